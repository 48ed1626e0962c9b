package component

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
