package domain

// ActorType identifies the kind of principal performing an action.
type ActorType string

const (
	ActorTypeAdmin ActorType = "admin"
)

// AuthMethod records how an actor's identity was verified.
type AuthMethod string

const (
	AuthMethodPassword AuthMethod = "password"
	AuthMethodAPIToken AuthMethod = "api_token"
	AuthMethodSSO      AuthMethod = "sso"
)

// ActorContext identifies who is performing a privileged action. It is
// built once per request by the auth middleware and passed by value;
// nothing downstream mutates it.
type ActorContext struct {
	ActorType        ActorType  `json:"actor_type"`
	ActorID          string     `json:"actor_id"`
	AuthenticatedVia AuthMethod `json:"authenticated_via"`
}

// TargetType is the closed set of things an admin action can act upon.
type TargetType string

const (
	TargetTypeUser  TargetType = "user"
	TargetTypeClub  TargetType = "club"
	TargetTypeEvent TargetType = "event"
)

// MutationTarget identifies what a privileged write acted upon, for
// audit traceability.
type MutationTarget struct {
	Type TargetType `json:"target_type"`
	ID   string     `json:"target_id"`
}
