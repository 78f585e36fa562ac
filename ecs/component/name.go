package component

// Name is the prefab name of an entity, used to resolve references written in
// YAML (hide lists, control script lists) into entity handles.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
