package interfaces

// Repository defines the interface for data persistence.
// Every method takes a tenant scope as its first argument; implementations
// must never serve reads or writes across scopes.
type Repository interface {
	Action() ActionRepository
	Decision() DecisionRepository
	Preference() PreferenceRepository

	Close() error
}
