package grpc

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rpcLine     = regexp.MustCompile(`rpc (\w+)\((\w+)\) returns \((\w+)\)`)
	messageDecl = regexp.MustCompile(`message (\w+) \{([^}]*)\}`)
	fieldLine   = regexp.MustCompile(`(?m)^\s*(?:repeated )?\w+ (\w+) = \d+;`)
)

func readProto(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "..", "proto", "gophtasks", "v1", "tasks.proto"))
	require.NoError(t, err)
	return string(b)
}

// jsonName applies the proto3 JSON mapping: snake_case to lowerCamelCase.
func jsonName(field string) string {
	parts := strings.Split(field, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func jsonTags(t reflect.Type) []string {
	var tags []string
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags
}

func TestProtoContract_MethodsMatchServiceDesc(t *testing.T) {
	src := readProto(t)
	assert.Contains(t, src, "package gophtasks.v1;")
	assert.Equal(t, "gophtasks.v1.TaskService", ServiceName)

	var declared []string
	for _, m := range rpcLine.FindAllStringSubmatch(src, -1) {
		declared = append(declared, m[1])
	}
	var served []string
	for _, m := range ServiceDesc.Methods {
		served = append(served, m.MethodName)
	}
	assert.ElementsMatch(t, declared, served)
}

func TestProtoContract_MessagesMatchStructs(t *testing.T) {
	structs := map[string]reflect.Type{}
	srv := reflect.TypeOf((*TaskServiceServer)(nil)).Elem()
	for i := 0; i < srv.NumMethod(); i++ {
		m := srv.Method(i).Type
		for _, typ := range []reflect.Type{m.In(1).Elem(), m.Out(0).Elem()} {
			structs[typ.Name()] = typ
		}
	}

	src := readProto(t)
	for _, m := range rpcLine.FindAllStringSubmatch(src, -1) {
		for _, name := range m[2:] {
			_, ok := structs[name]
			assert.True(t, ok, "rpc %s uses %s with no Go counterpart", m[1], name)
		}
	}

	decls := messageDecl.FindAllStringSubmatch(src, -1)
	require.NotEmpty(t, decls)
	for _, d := range decls {
		typ, ok := structs[d[1]]
		if !assert.True(t, ok, "message %s has no Go counterpart", d[1]) {
			continue
		}
		want := []string{}
		for _, f := range fieldLine.FindAllStringSubmatch(d[2], -1) {
			want = append(want, jsonName(f[1]))
		}
		sort.Strings(want)
		got := jsonTags(typ)
		if got == nil {
			got = []string{}
		}
		assert.Equal(t, want, got, "message %s", d[1])
	}
}
