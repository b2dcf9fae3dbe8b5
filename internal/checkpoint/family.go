package checkpoint

import (
	"time"

	"familysync/internal/model"
	"familysync/internal/repository"
)

func newFamilyHandler() RecordHandler {
	return &recordHandler[model.Family]{
		table: repository.Tx.Families,
		audit: func(f *model.Family) *model.Audit { return &f.Audit },
		fields: []field[model.Family]{
			text("name", func(f *model.Family) *string { return &f.Name }),
			optText("color_code", func(f *model.Family) **string { return &f.ColorCode }),
			date("subscription_end_date", func(f *model.Family) **time.Time { return &f.SubscriptionEndDate }),
			optText("place_of_living", func(f *model.Family) **string { return &f.PlaceOfLiving }),
			optText("residence_type", func(f *model.Family) **string { return &f.ResidenceType }),
			optText("family_image", func(f *model.Family) **string { return &f.FamilyImage }),
		},
	}
}
