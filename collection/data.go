package collection

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
)

// CollectionData is the decoded form of a collection file.
type CollectionData struct {
	OS        string          `yaml:"os"`
	Scripting ScriptingData   `yaml:"scripting"`
	Actions   []*CategoryData `yaml:"actions"`
	Functions []*FunctionData `yaml:"functions,omitempty"`
}

// ScriptingData describes the target language and the code wrapped around
// every generated script.
type ScriptingData struct {
	Language      string `yaml:"language"`
	FileExtension string `yaml:"fileExtension,omitempty"`
	StartCode     string `yaml:"startCode,omitempty"`
	EndCode       string `yaml:"endCode,omitempty"`
}

// CategoryData is the decoded form of a category. The name may be given
// with either the "category" or the "name" key.
type CategoryData struct {
	Category string       `yaml:"category,omitempty"`
	Name     string       `yaml:"name,omitempty"`
	Docs     DocsData     `yaml:"docs,omitempty"`
	Children []*ChildData `yaml:"children"`
}

// DisplayName returns the category name, preferring the "category" key.
func (d *CategoryData) DisplayName() string {
	if d.Category != "" {
		return d.Category
	}

	return d.Name
}

// ScriptData is the decoded form of a script.
type ScriptData struct {
	Name       string   `yaml:"name"`
	Docs       DocsData `yaml:"docs,omitempty"`
	Code       string   `yaml:"code,omitempty"`
	RevertCode string   `yaml:"revertCode,omitempty"`
	Call       CallData `yaml:"call,omitempty"`
	Recommend  string   `yaml:"recommend,omitempty"`
}

// ChildData is one entry in a category's children: exactly one of a
// category or a script.
type ChildData struct {
	Category *CategoryData
	Script   *ScriptData
}

// UnmarshalYAML decodes a child as a category when it has a "children" or
// a "category" key, and as a script otherwise.
func (c *ChildData) UnmarshalYAML(unmarshal func(any) error) error {
	var keys map[string]any
	if err := unmarshal(&keys); err != nil {
		return err
	}

	_, hasChildren := keys["children"]
	_, hasCategory := keys["category"]

	if hasChildren || hasCategory {
		c.Category = new(CategoryData)

		return unmarshal(c.Category)
	}

	c.Script = new(ScriptData)

	return unmarshal(c.Script)
}

// FunctionData is the decoded form of a shared function.
type FunctionData struct {
	Name       string          `yaml:"name"`
	Parameters []ParameterData `yaml:"parameters,omitempty"`
	Code       string          `yaml:"code,omitempty"`
	RevertCode string          `yaml:"revertCode,omitempty"`
	Call       CallData        `yaml:"call,omitempty"`
}

// ParameterData declares a function parameter. Parameters are required
// unless marked optional.
type ParameterData struct {
	Name     string `yaml:"name"`
	Optional bool   `yaml:"optional,omitempty"`
}

// FunctionCallData is a single call to a shared function.
type FunctionCallData struct {
	Function   string        `yaml:"function"`
	Parameters ArgumentsData `yaml:"parameters,omitempty"`
}

// ArgumentData is one call argument: the parameter name and the source
// text of its value, exactly as written in the collection.
type ArgumentData struct {
	Name  string
	Value string
}

// ArgumentsData is the argument mapping of a call, in declaration order.
type ArgumentsData []ArgumentData

// UnmarshalYAML implements yaml.NodeUnmarshaler. Values are kept as their
// scalar source text so that 0755 stays "0755" rather than 493.
func (a *ArgumentsData) UnmarshalYAML(node ast.Node) error {
	node = unwrapNode(node)

	if _, ok := node.(*ast.NullNode); ok {
		*a = nil

		return nil
	}

	var values []*ast.MappingValueNode

	switch n := node.(type) {
	case *ast.MappingNode:
		values = n.Values
	case *ast.MappingValueNode:
		values = []*ast.MappingValueNode{n}
	default:
		return nodeError(node, "call parameters must be a mapping")
	}

	args := make(ArgumentsData, 0, len(values))

	for _, mv := range values {
		name, err := scalarText(mv.Key)
		if err != nil {
			return err
		}

		value, err := scalarText(mv.Value)
		if err != nil {
			return ErrInvalidArgumentValue.
				With(slog.String("parameter", name)).
				Wrap(err)
		}

		args = append(args, ArgumentData{Name: name, Value: value})
	}

	*a = args

	return nil
}

// unwrapNode strips tags and anchors from node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// scalarText returns the source text of a scalar node. Quoted and block
// strings yield their content; null yields the empty string.
func scalarText(node ast.Node) (string, error) {
	switch n := unwrapNode(node).(type) {
	case nil, *ast.NullNode:
		return "", nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode:
		return "", nodeError(n, "value must be a scalar, not a %s", n.Type())
	case ast.ScalarNode:
		return n.GetToken().Value, nil
	default:
		return "", nodeError(n, "unsupported value: %s", n.Type())
	}
}

// nodeError reports msg at the source position of node.
func nodeError(node ast.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	if tk := node.GetToken(); tk != nil && tk.Position != nil {
		return fmt.Errorf("[%d:%d] %s", tk.Position.Line, tk.Position.Column, msg)
	}

	return errors.New(msg)
}

// CallData is one call or a sequence of calls. A single mapping decodes to
// a one-element slice.
type CallData []*FunctionCallData

// UnmarshalYAML implements yaml.NodeUnmarshaler.
func (c *CallData) UnmarshalYAML(node ast.Node) error {
	switch n := unwrapNode(node).(type) {
	case *ast.NullNode:
		*c = nil

		return nil

	case *ast.SequenceNode:
		var list []*FunctionCallData
		if err := yaml.NodeToValue(n, &list); err != nil {
			return err
		}

		*c = list

		return nil

	default:
		var single FunctionCallData
		if err := yaml.NodeToValue(n, &single); err != nil {
			return err
		}

		*c = CallData{&single}

		return nil
	}
}

// DocsData is one documentation URL or a list of them.
type DocsData []string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (d *DocsData) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*d = list

		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return fmt.Errorf("docs must be a string or a list of strings: %w", err)
	}

	*d = DocsData{single}

	return nil
}
