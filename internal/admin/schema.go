package admin

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Strategy is how a database schema is chosen for a new context.
type Strategy int

const (
	StrategyDefault Strategy = iota
	// StrategySchema uses a named schema.
	StrategySchema
	// StrategyInMemory picks the schema with the fewest contexts from the
	// in-memory counters.
	StrategyInMemory
	// StrategyAutomatic asks the database for the schema with the fewest
	// contexts.
	StrategyAutomatic
)

var strategyNames = map[Strategy]string{
	StrategyDefault:   "default",
	StrategySchema:    "schema",
	StrategyInMemory:  "in-memory",
	StrategyAutomatic: "automatic",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// SchemaSelectStrategy selects the schema a context is created in.
type SchemaSelectStrategy struct {
	Strategy Strategy
	Schema   string
}

func SchemaStrategy(schema string) SchemaSelectStrategy {
	return SchemaSelectStrategy{Strategy: StrategySchema, Schema: schema}
}

func InMemoryStrategy() SchemaSelectStrategy {
	return SchemaSelectStrategy{Strategy: StrategyInMemory}
}

func AutomaticStrategy() SchemaSelectStrategy {
	return SchemaSelectStrategy{Strategy: StrategyAutomatic}
}

// ParseSchemaSelectStrategy accepts "automatic", "in-memory", "default" or
// "schema:<name>".
func ParseSchemaSelectStrategy(s string) (SchemaSelectStrategy, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "schema:"); ok {
		if name == "" {
			return SchemaSelectStrategy{}, fmt.Errorf("empty schema name")
		}
		return SchemaStrategy(name), nil
	}
	switch strings.ToLower(s) {
	case "", "default":
		return SchemaSelectStrategy{}, nil
	case "in-memory", "inmemory":
		return InMemoryStrategy(), nil
	case "automatic":
		return AutomaticStrategy(), nil
	}
	return SchemaSelectStrategy{}, fmt.Errorf("unknown schema select strategy %q", s)
}

func (s SchemaSelectStrategy) String() string {
	if s.Strategy == StrategySchema {
		return "schema:" + s.Schema
	}
	return s.Strategy.String()
}

func (s SchemaSelectStrategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SchemaSelectStrategy) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := ParseSchemaSelectStrategy(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
