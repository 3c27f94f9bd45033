package domain

// Role представляет роль пользователя в команде.
// Роль вычисляется эвристически на стороне клиента и не является
// авторитетным сигналом авторизации - backend перепроверяет права сам.
type Role string

// Возможные роли участника команды
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Team представляет команду пользователя
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tier        string `json:"tier,omitempty"`
	Email       string `json:"email,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Role        Role   `json:"role,omitempty"`
	MemberCount int    `json:"memberCount,omitempty"`
}

// Membership представляет связь пользователь-команда в том виде,
// в котором её возвращает backend (/user-team-by-team)
type Membership struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	TeamID    string         `json:"team_id"`
	IsDefault bool           `json:"is_default,omitempty"`
	Edges     map[string]any `json:"edges,omitempty"`
}

// TeamMember представляет участника команды с присоединенным профилем
type TeamMember struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	TeamID string      `json:"teamId"`
	Role   Role        `json:"role"`
	User   UserProfile `json:"user"`
}

// ResolveMemberRole вычисляет роль участника команды по трем правилам,
// первое совпадение выигрывает:
//  1. явное поле role в edges связи;
//  2. флаг is_default - команда по умолчанию принадлежит владельцу;
//  3. совпадение email участника с email команды.
//
// Если ни одно правило не сработало, участник считается обычным member.
func ResolveMemberRole(m Membership, memberEmail, teamEmail string) Role {
	if edgeRole, ok := m.Edges["role"].(string); ok && edgeRole != "" {
		return Role(edgeRole)
	}
	if m.IsDefault {
		return RoleOwner
	}
	if memberEmail != "" && teamEmail != "" && memberEmail == teamEmail {
		return RoleOwner
	}
	return RoleMember
}
