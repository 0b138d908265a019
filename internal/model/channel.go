package model

// Channel identifies a chat channel either by its configured name or, when
// only an id was supplied, by a synthesized alias.
type Channel struct {
	Name string
	ID   string
}

// Alias returns the string used in the `channel=` partition segment: the
// configured name when present, or "channel_"+id when only an id was given.
func (c Channel) Alias() string {
	return ChannelAlias(c.Name, c.ID)
}

// ChannelAlias is the alias-synthesis rule as a free function, so the
// reader's alias-fallback logic (which only has a requested string, not a
// Channel) can reuse the same rule.
func ChannelAlias(name, id string) string {
	if name != "" {
		return name
	}
	return "channel_" + id
}

// QueryRef returns the value to pass the remote chat API when fetching this
// channel's history: the raw id when one was configured, falling back to
// the name for channels that were only ever given a human-readable one.
func (c Channel) QueryRef() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}
