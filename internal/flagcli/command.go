package flagcli

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. It should return a UsageError (or any
// ExitCoder with code 2) for user-facing usage mistakes.
type ArgsFunc func(args []string) error

// Command defines one CLI command. vscodediff registers a single flat
// command today, but Command keeps the small tree shape (Name + children)
// so a future subcommand can be added without reworking the parser.
type Command struct {
	Name  string
	Short string

	Args ArgsFunc // optional
	Run  RunFunc  // optional

	children   []*Command
	localFlags *FlagSet
}

// AddCommand adds child commands under c.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		if child == nil {
			panic("flagcli: AddCommand called with nil child")
		}
		if child.Name == "" {
			panic("flagcli: AddCommand called with a child with empty Name")
		}
		c.children = append(c.children, child)
	}
}

// Flags returns c's flag set, creating it on first use.
func (c *Command) Flags() *FlagSet {
	if c.localFlags == nil {
		c.localFlags = newFlagSet()
	}
	return c.localFlags
}

func (c *Command) childByToken(token string) *Command {
	for _, child := range c.children {
		if child.Name == token {
			return child
		}
	}
	return nil
}

func (c *Command) activeFlags() activeFlags {
	byLong := map[string]*flagDef{}
	byShort := map[rune]*flagDef{}
	if c.localFlags != nil {
		for _, def := range c.localFlags.byLong {
			addActiveFlag(byLong, byShort, def)
		}
	}
	return activeFlags{byLong: byLong, byShort: byShort}
}
