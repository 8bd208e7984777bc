package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr error
	}{
		{name: "legal", input: "legal", want: CategoryLegal},
		{name: "boilerplate", input: "boilerplate", want: CategoryBoilerplate},
		{name: "signature", input: "signature", want: CategorySignature},
		{name: "header", input: "header", want: CategoryHeader},
		{name: "footer", input: "footer", want: CategoryFooter},
		{name: "mixed case and spaces", input: "  Legal ", want: CategoryLegal},
		{name: "unknown value", input: "invalid-value", wantErr: ErrInvalidCategory},
		{name: "empty", input: "", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoriesAreAllValid(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 5)
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, Category("invalid-value").Valid())
}

func TestEntityValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		wantErr error
	}{
		{
			name:   "valid entity",
			entity: Entity{ID: "confidentiality", Name: "Confidentiality", Category: CategoryLegal},
		},
		{
			name:    "empty ID",
			entity:  Entity{ID: "", Category: CategoryLegal},
			wantErr: ErrInvalidID,
		},
		{
			name:    "blank ID",
			entity:  Entity{ID: "   ", Category: CategoryLegal},
			wantErr: ErrInvalidID,
		},
		{
			name:    "category outside the enumeration",
			entity:  Entity{ID: "x", Category: Category("invalid-value")},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "missing category",
			entity:  Entity{ID: "x"},
			wantErr: ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEntityMatches(t *testing.T) {
	e := Entity{
		ID:      "confidentiality",
		Name:    "Confidentiality Clause",
		Content: "The Receiving Party shall hold all Confidential Information in strict confidence.",
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches", query: "", want: true},
		{name: "name lower case", query: "confidentiality", want: true},
		{name: "name upper case", query: "CONFIDENTIALITY", want: true},
		{name: "content only", query: "receiving party", want: true},
		{name: "id is not searched", query: "confidentiality-", want: false},
		{name: "no match", query: "indemnify", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Matches(tt.query))
		})
	}
}

func TestCategoryDecoding(t *testing.T) {
	t.Run("json accepts known category", func(t *testing.T) {
		var e Entity
		err := json.Unmarshal([]byte(`{"id":"a","category":"Footer"}`), &e)
		require.NoError(t, err)
		assert.Equal(t, CategoryFooter, e.Category)
	})

	t.Run("json rejects unknown category", func(t *testing.T) {
		var e Entity
		err := json.Unmarshal([]byte(`{"id":"a","category":"invalid-value"}`), &e)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("yaml rejects unknown category", func(t *testing.T) {
		var e Entity
		err := yaml.Unmarshal([]byte("id: a\ncategory: invalid-value\n"), &e)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("json round trip keeps category name", func(t *testing.T) {
		data, err := json.Marshal(Entity{ID: "a", Category: CategorySignature})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"category":"signature"`)
	})
}
