package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dejson"
	"github.com/viant/dejson/derive"
	"github.com/viant/tagly/format/text"
)

type account struct {
	UserName string
	Age      int
	Tags     []string
}

func TestRegister_CaseFormat(t *testing.T) {
	assert.Nil(t, derive.Register[account](derive.WithCaseFormat(text.CaseFormatLowerCamel)))

	var out account
	err := dejson.Unmarshal([]byte(`{"userName":"ann","age":30,"tags":["a"]}`), &out)
	assert.Nil(t, err)
	assert.Equal(t, account{UserName: "ann", Age: 30, Tags: []string{"a"}}, out)

	// With a convention configured the literal Go name no longer binds;
	// tolerant mode discards it, so the required field goes missing.
	out = account{}
	err = dejson.Unmarshal([]byte(`{"UserName":"ann","age":30}`), &out)
	if assert.NotNil(t, err) {
		fault := err.(*dejson.Error)
		assert.Equal(t, dejson.ErrorMissingField, fault.Kind)
		assert.Equal(t, "userName", fault.Field)
	}
}

func TestRegister_CaseFormatStrict(t *testing.T) {
	assert.Nil(t, derive.Register[account](
		derive.WithCaseFormat(text.CaseFormatLowerCamel),
		derive.WithStrictKeys(),
	))

	var out account
	err := dejson.Unmarshal([]byte(`{"UserName":"ann","age":30}`), &out)
	if assert.NotNil(t, err) {
		fault := err.(*dejson.Error)
		assert.Equal(t, dejson.ErrorUnexpected, fault.Kind)
		assert.Contains(t, fault.Description, `"UserName"`)
	}
}

type record struct {
	ID      int    `json:"id"`
	Label   string `json:"display_label"`
	Skipped string `json:"-"`
	Note    string
}

func TestRegister_JSONTags(t *testing.T) {
	assert.Nil(t, derive.Register[record](derive.WithOptional("Note")))

	var out record
	err := dejson.Unmarshal([]byte(`{"id":5,"display_label":"x","Skipped":"ignored"}`), &out)
	assert.Nil(t, err)
	assert.Equal(t, record{ID: 5, Label: "x"}, out)
}

type renamed struct {
	Field string `json:"tagged"`
}

func TestRegister_RenamePrecedence(t *testing.T) {
	// A per-field rename beats both the json tag and the convention.
	assert.Nil(t, derive.Register[renamed](
		derive.WithCaseFormat(text.CaseFormatUpperUnderscore),
		derive.WithRename("Field", "override"),
	))

	var out renamed
	assert.Nil(t, dejson.Unmarshal([]byte(`{"override":"v"}`), &out))
	assert.Equal(t, "v", out.Field)

	err := dejson.Unmarshal([]byte(`{"tagged":"v"}`), &out)
	if assert.NotNil(t, err) {
		assert.Equal(t, dejson.ErrorMissingField, err.(*dejson.Error).Kind)
	}
}

type missing struct {
	Required string
	Ptr      *int
	List     []int
	Lookup   map[string]int
}

func TestRegister_MissingFields(t *testing.T) {
	assert.Nil(t, derive.Register[missing]())

	var out missing
	err := dejson.Unmarshal([]byte(`{}`), &out)
	if assert.NotNil(t, err) {
		fault := err.(*dejson.Error)
		assert.Equal(t, dejson.ErrorMissingField, fault.Kind)
		assert.Equal(t, "Required", fault.Field)
	}

	// Pointer, slice and map fields are implicitly optional.
	out = missing{}
	assert.Nil(t, dejson.Unmarshal([]byte(`{"Required":"x"}`), &out))
	assert.Nil(t, out.Ptr)
	assert.Nil(t, out.List)
	assert.Nil(t, out.Lookup)
}

type withDefaults struct {
	Host string
	Port int
}

func TestRegister_Defaults(t *testing.T) {
	assert.Nil(t, derive.Register[withDefaults](
		derive.WithDefault("Host", "localhost"),
		derive.WithDefault("Port", 8080),
	))

	var out withDefaults
	assert.Nil(t, dejson.Unmarshal([]byte(`{"Port":9090}`), &out))
	assert.Equal(t, withDefaults{Host: "localhost", Port: 9090}, out)
}

type tolerant struct {
	Keep string
}

func TestRegister_UnknownKeys(t *testing.T) {
	assert.Nil(t, derive.Register[tolerant]())

	// Unknown keys of any shape are consumed and discarded.
	var out tolerant
	err := dejson.Unmarshal([]byte(`{"extra":{"deep":[1,{"x":null}]},"Keep":"v","n":1.5}`), &out)
	assert.Nil(t, err)
	assert.Equal(t, "v", out.Keep)

	assert.Nil(t, derive.Register[tolerant](derive.WithStrictKeys()))
	err = dejson.Unmarshal([]byte(`{"Keep":"v","extra":1}`), &out)
	if assert.NotNil(t, err) {
		assert.Equal(t, dejson.ErrorUnexpected, err.(*dejson.Error).Kind)
	}
}

type inner struct {
	Value int
}

type outer struct {
	Name  string
	Child inner
	Link  *inner
}

func TestRegister_Nested(t *testing.T) {
	assert.Nil(t, derive.Register[inner]())
	assert.Nil(t, derive.Register[outer]())

	var out outer
	err := dejson.Unmarshal([]byte(`{"Name":"n","Child":{"Value":1},"Link":{"Value":2}}`), &out)
	assert.Nil(t, err)
	assert.Equal(t, outer{Name: "n", Child: inner{Value: 1}, Link: &inner{Value: 2}}, out)

	// A shape violation deep inside surfaces through the same capability.
	err = dejson.Unmarshal([]byte(`{"Name":"n","Child":{"Value":"x"}}`), &out)
	if assert.NotNil(t, err) {
		assert.Equal(t, dejson.ErrorUnexpected, err.(*dejson.Error).Kind)
	}
}

type sliceOfStructs struct {
	Items []inner
}

func TestRegister_SliceOfStructs(t *testing.T) {
	assert.Nil(t, derive.Register[inner]())
	assert.Nil(t, derive.Register[sliceOfStructs]())

	var out sliceOfStructs
	err := dejson.Unmarshal([]byte(`{"Items":[{"Value":1},{"Value":2}]}`), &out)
	assert.Nil(t, err)
	assert.Equal(t, []inner{{Value: 1}, {Value: 2}}, out.Items)
}

func TestRegister_Errors(t *testing.T) {
	assert.NotNil(t, derive.Register[int]())

	type clash struct {
		A string `json:"same"`
		B string `json:"same"`
	}
	assert.NotNil(t, derive.Register[clash]())

	type simple struct{ A string }
	assert.NotNil(t, derive.Register[simple](derive.WithRename("Missing", "x")))
	assert.NotNil(t, derive.Register[simple](derive.WithDefault("A", 42)))
}
