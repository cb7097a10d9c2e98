package ast

// Lookup is a reference to packet metadata
//
// Set of lookups is closed: LookupName, LookupID, LookupParameter,
// LookupThis, LookupEnvironment. Lookups are values and could be compared with ==.
type Lookup interface {
	// String returns lookup as it is written in a query
	String() string

	lookup()
}

// LookupName is packet name
type LookupName struct{}

// LookupID is packet id
type LookupID struct{}

// LookupParameter is packet parameter by name
type LookupParameter struct {
	Name string
}

// LookupThis is a value bound by the caller under a name, `this:name`
type LookupThis struct {
	Name string
}

// LookupEnvironment is a value from the evaluation environment, `environment:name`
type LookupEnvironment struct {
	Name string
}

func (LookupName) lookup()        {}
func (LookupID) lookup()          {}
func (LookupParameter) lookup()   {}
func (LookupThis) lookup()        {}
func (LookupEnvironment) lookup() {}

func (LookupName) String() string { return "name" }

func (LookupID) String() string { return "id" }

func (l LookupParameter) String() string { return "parameter:" + l.Name }

func (l LookupThis) String() string { return "this:" + l.Name }

func (l LookupEnvironment) String() string { return "environment:" + l.Name }
