package flagcli

import (
	"fmt"
	"sort"
	"strconv"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagInt
)

// FlagSet is a typed flag registry for a command. vscodediff only needs
// bool and int flags (-b, -T <ms>); String/Duration kinds were dropped
// since nothing in this CLI parses them.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune
	usage     string
	kind      flagKind

	boolPtr *bool
	intPtr  *int
}

func newFlagSet() *FlagSet {
	return &FlagSet{
		byLong:  map[string]*flagDef{},
		byShort: map[rune]*flagDef{},
	}
}

func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	if name == "" {
		panic("flagcli: flag name must be non-empty")
	}
	ptr := new(bool)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, boolPtr: ptr})
	return ptr
}

func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	if name == "" {
		panic("flagcli: flag name must be non-empty")
	}
	ptr := new(int)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagInt, intPtr: ptr})
	return ptr
}

func (fs *FlagSet) add(def *flagDef) {
	if _, ok := fs.byLong[def.name]; ok {
		panic("flagcli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic(fmt.Sprintf("flagcli: duplicate shorthand flag: -%c", def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

type activeFlags struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

func addActiveFlag(byLong map[string]*flagDef, byShort map[rune]*flagDef, def *flagDef) {
	if existing, ok := byLong[def.name]; ok && existing != def {
		panic("flagcli: flag name conflict: --" + def.name)
	}
	byLong[def.name] = def
	if def.shorthand != 0 {
		if existing, ok := byShort[def.shorthand]; ok && existing != def {
			panic(fmt.Sprintf("flagcli: shorthand conflict: -%c", def.shorthand))
		}
		byShort[def.shorthand] = def
	}
}

type flagHelp struct {
	def  *flagDef
	kind string
}

func flagsForHelp(cmd *Command) []flagHelp {
	active := cmd.activeFlags()
	var helps []flagHelp
	for _, def := range active.byLong {
		kind := ""
		switch def.kind {
		case flagBool:
			kind = "bool"
		case flagInt:
			kind = "int"
		}
		helps = append(helps, flagHelp{def: def, kind: kind})
	}
	sort.Slice(helps, func(i, j int) bool { return helps[i].def.name < helps[j].def.name })
	return helps
}

// parseAndSet resolves token to a registered flag and applies its value.
// It reports whether the next argv token was consumed as the flag's value.
func (a activeFlags) parseAndSet(token string, hasDashDash bool, name string, shorthand rune, value *string, nextValue *string) (bool, error) {
	var def *flagDef
	if name != "" {
		def = a.byLong[name]
	} else {
		def = a.byShort[shorthand]
	}
	if def == nil {
		return false, usageErrorf("unknown flag: %s", token)
	}

	consumeNext := false
	var raw string
	switch {
	case value != nil:
		raw = *value
	case def.kind == flagBool:
		if nextValue != nil {
			if _, err := strconv.ParseBool(*nextValue); err == nil {
				raw, consumeNext = *nextValue, true
			} else {
				raw = "true"
			}
		} else {
			raw = "true"
		}
	default:
		if nextValue == nil {
			if hasDashDash {
				return false, usageErrorf("flag needs a value before --: %s", token)
			}
			return false, usageErrorf("flag needs a value: %s", token)
		}
		raw, consumeNext = *nextValue, true
	}

	if err := setFlagValue(def, raw); err != nil {
		return false, usageErrorf("invalid value for %s: %v", displayFlag(def), err)
	}
	return consumeNext, nil
}

func setFlagValue(def *flagDef, raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
		return nil
	case flagInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*def.intPtr = v
		return nil
	default:
		return fmt.Errorf("unknown flag kind")
	}
}

func displayFlag(def *flagDef) string {
	if def.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", def.shorthand, def.name)
	}
	return "--" + def.name
}
