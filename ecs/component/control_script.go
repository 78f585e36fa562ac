package component

// ControlScript is an externally owned behavior the possession system may
// switch off. Only Enabled is ever written by possession.
type ControlScript struct {
	Name    string
	Enabled bool
}

// SetEnabled flips the script's enabled flag.
func (c *ControlScript) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	c.Enabled = enabled
}

var ControlScriptComponent = NewComponent[ControlScript]()
