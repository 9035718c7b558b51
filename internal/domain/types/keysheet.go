package types

// KeySheet is a complete, self-contained set of machine settings. Specs are
// embedded rather than referenced by catalog index so a sheet works on any
// installation.
type KeySheet struct {
	Name       KeySheetName  `json:"name"`
	Rotors     []RotorSpec   `json:"rotors"`
	Reflector  ReflectorSpec `json:"reflector"`
	Plugboard  PlugboardSpec `json:"plugboard"`
	Positions  string        `json:"positions"`
	CreatedUTC int64         `json:"created_utc"`
}
