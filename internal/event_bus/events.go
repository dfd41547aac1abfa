package event_bus

type TeamMemberCreatedPayload struct {
	Id   string
	Name string
	Role string
}
