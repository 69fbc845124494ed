package workflow

import "docflow/internal/domain"

// DefaultDirectorateName is the business area name that carries stage-3
// authority unless configuration overrides it.
const DefaultDirectorateName = "Directorate"

// Policy holds the configuration the authorization rules depend on.
type Policy struct {
	DirectorateName string
}

// NewPolicy returns a Policy, falling back to the default directorate name
// when the configured one is empty.
func NewPolicy(directorateName string) Policy {
	if directorateName == "" {
		directorateName = DefaultDirectorateName
	}
	return Policy{DirectorateName: directorateName}
}

// AuthContext bundles everything the policy table needs about one actor and
// one project. Loading it is the service layer's job; deciding on it is pure.
type AuthContext struct {
	Actor       *domain.User
	ActorArea   *domain.BusinessArea // nil when the actor belongs to no area
	Project     *domain.Project
	Members     []domain.ProjectMember
	ProjectArea *domain.BusinessArea // the project's owning business area
}

// Authorize reports whether the actor holds authority for the given stage.
//
//   - Stage 1: the project's leader member.
//   - Stage 2: the leader of the project's business area.
//   - Stage 3: any member of the directorate business area.
//
// Superusers bypass every stage. Authority over one stage implies nothing
// about the others.
func (p Policy) Authorize(c AuthContext, stage domain.ApprovalStage) bool {
	if c.Actor == nil || !stage.Valid() {
		return false
	}
	if c.Actor.IsSuperuser {
		return true
	}

	switch stage {
	case domain.StageProjectLead:
		for _, m := range c.Members {
			if m.IsLeader && m.UserID == c.Actor.ID {
				return true
			}
		}
	case domain.StageBusinessAreaLead:
		if c.ProjectArea != nil && c.ProjectArea.LeaderID != nil {
			return *c.ProjectArea.LeaderID == c.Actor.ID
		}
	case domain.StageDirectorate:
		if c.ActorArea != nil {
			return c.ActorArea.Name == p.DirectorateName
		}
	}
	return false
}
