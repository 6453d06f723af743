// Author: lwmacct (https://github.com/lwmacct)

package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// ExampleYAML 将配置结构体序列化为带注释的 YAML，注释取自 desc tag。
//
// 结构体与切片字段的注释写在 key 上方，其余字段的单行注释写在行尾。
//
//	data := config.ExampleYAML(DefaultConfig())
//	os.WriteFile("config/config.example.yaml", data, 0o644)
func ExampleYAML[T any](cfg T) []byte {
	node := mappingNode(reflect.ValueOf(cfg))
	node.HeadComment = "配置示例文件, 复制此文件为 config.yaml 并根据需要修改"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(node)
	_ = enc.Close()

	return buf.Bytes()
}

// Marshal 将配置结构体按 format 序列化 (yaml、json 或 env)。
//
// env 格式的变量名为 EncodeKey 编码后的配置 key，如 PARSER_OVERWRITE。
func Marshal[T any](cfg T, format string) ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	parser, err := parserFor(format, &options{}, nil)
	if err != nil {
		return nil, err
	}

	data, err := k.Marshal(parser)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config as %s: %w", format, err)
	}

	return data, nil
}

// mappingNode 将结构体转换为带注释的 MappingNode
func mappingNode(val reflect.Value) *yamlv3.Node {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null"}
		}
		val = val.Elem()
	}

	node := &yamlv3.Node{Kind: yamlv3.MappingNode}
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := field.Tag.Get("koanf")
		if key == "" || key == "-" {
			continue
		}
		desc := field.Tag.Get("desc")

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: key}
		var valNode *yamlv3.Node
		isStruct := field.Type.Kind() == reflect.Struct && field.Type != durationType && field.Type != timeType
		if isStruct {
			valNode = mappingNode(val.Field(i))
		} else {
			valNode = valueNode(val.Field(i))
		}

		switch {
		case desc == "":
		case isStruct || field.Type.Kind() == reflect.Slice || strings.Contains(desc, "\n"):
			keyNode.HeadComment = "\n" + desc
		default:
			valNode.LineComment = desc
		}
		node.Content = append(node.Content, keyNode, valNode)
	}

	return node
}

// valueNode 将叶子值转换为 yamlv3.Node
func valueNode(val reflect.Value) *yamlv3.Node {
	scalar := func(v string) *yamlv3.Node { return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: v} }

	switch v := val.Interface().(type) {
	case time.Duration:
		return scalar(v.String())
	case time.Time:
		return scalar(v.Format(time.RFC3339))
	}

	switch val.Kind() {
	case reflect.String:
		n := scalar(val.String())
		n.Style = yamlv3.DoubleQuotedStyle

		return n
	case reflect.Bool:
		return scalar(strconv.FormatBool(val.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar(strconv.FormatInt(val.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalar(strconv.FormatUint(val.Uint(), 10))
	case reflect.Slice:
		n := &yamlv3.Node{Kind: yamlv3.SequenceNode}
		if val.Len() == 0 {
			n.Style = yamlv3.FlowStyle
		}
		for j := range val.Len() {
			elem := valueNode(val.Index(j))
			elem.Style = 0
			n.Content = append(n.Content, elem)
		}

		return n
	case reflect.Map:
		n := &yamlv3.Node{Kind: yamlv3.MappingNode}
		if val.Len() == 0 {
			n.Style = yamlv3.FlowStyle
		}
		for it := val.MapRange(); it.Next(); {
			n.Content = append(n.Content, scalar(fmt.Sprint(it.Key().Interface())), valueNode(it.Value()))
		}

		return n
	default:
		return scalar(fmt.Sprint(val.Interface()))
	}
}
