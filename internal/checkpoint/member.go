package checkpoint

import (
	"time"

	"github.com/google/uuid"

	"familysync/internal/model"
	"familysync/internal/repository"
)

// The password hash is owned by the server: it is not a recognized field and
// survives a PUT that replaces the member.
func newMemberHandler() RecordHandler {
	return &recordHandler[model.Member]{
		table: repository.Tx.Members,
		audit: func(m *model.Member) *model.Audit { return &m.Audit },
		keep: func(m, prev *model.Member, _ Payload) {
			m.PasswordHash = prev.PasswordHash
		},
		fields: []field[model.Member]{
			text("name", func(m *model.Member) *string { return &m.Name }),
			optText("email", func(m *model.Member) **string { return &m.Email }),
			ref("family_id", func(m *model.Member) **uuid.UUID { return &m.FamilyID }),
			optText("member_role", func(m *model.Member) **string { return &m.MemberRole }),
			date("birth_date", func(m *model.Member) **time.Time { return &m.BirthDate }),
			optText("color", func(m *model.Member) **string { return &m.Color }),
			optText("image", func(m *model.Member) **string { return &m.Image }),
			flag("is_verified", func(m *model.Member) *bool { return &m.IsVerified }),
			flag("is_google", func(m *model.Member) *bool { return &m.IsGoogle }),
			flag("is_apple", func(m *model.Member) *bool { return &m.IsApple }),
		},
	}
}
