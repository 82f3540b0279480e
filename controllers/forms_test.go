package controllers

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildForm assembles a multipart form the way the admin frontend posts it.
func buildForm(t *testing.T, values map[string]string, files map[string]string) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, val := range values {
		require.NoError(t, w.WriteField(key, val))
	}
	for key, name := range files {
		fw, err := w.CreateFormFile(key, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form
}

func TestFormLangMap(t *testing.T) {
	values := map[string][]string{
		"name[it]":        {"Museo"},
		"name[en]":        {"Museum"},
		"description[it]": {"Storia"},
		"other":           {"x"},
	}

	name := formLangMap(values, "name")
	assert.Equal(t, "Museo", name["it"])
	assert.Equal(t, "Museum", name["en"])
	assert.Len(t, name, 2)

	assert.Nil(t, formLangMap(values, "subtitle"), "absent prefix parses as nil, not empty")
}

func TestParseMediaInput(t *testing.T) {
	form := buildForm(t,
		map[string]string{
			"audio[title][it]": "Audioguida",
			"audio[id]":        "12",
		},
		map[string]string{"audio[file][it]": "guida.mp3"},
	)

	in := ParseMediaInput(form, "audio")
	require.NotNil(t, in)
	assert.Equal(t, uint(12), in.ID)
	assert.False(t, in.ToDelete)
	assert.Equal(t, "Audioguida", in.Title["it"])
	require.Contains(t, in.Files, "it")
	assert.Equal(t, "guida.mp3", in.Files["it"].Filename)
}

func TestParseMediaInputToDelete(t *testing.T) {
	form := buildForm(t, map[string]string{
		"logo[id]":        "4",
		"logo[to_delete]": "true",
	}, nil)

	in := ParseMediaInput(form, "logo")
	require.NotNil(t, in)
	assert.Equal(t, uint(4), in.ID)
	assert.True(t, in.ToDelete)
}

func TestParseMediaInputAbsent(t *testing.T) {
	form := buildForm(t, map[string]string{"name[it]": "Museo"}, nil)
	assert.Nil(t, ParseMediaInput(form, "audio"))
}

func TestParseGalleryInputs(t *testing.T) {
	form := buildForm(t,
		map[string]string{
			"images[0][id]":         "3",
			"images[0][to_delete]":  "1",
			"images[2][title][it]":  "Secondo",
			"images[10][title][it]": "Ultimo",
		},
		map[string]string{
			"images[2][file][it]":  "b.jpg",
			"images[10][file][it]": "c.jpg",
		},
	)

	items := ParseGalleryInputs(form, "images")
	require.Len(t, items, 3)

	// Numeric index order, not lexicographic.
	assert.Equal(t, uint(3), items[0].ID)
	assert.True(t, items[0].ToDelete)
	assert.Equal(t, "Secondo", items[1].Title["it"])
	assert.Equal(t, "b.jpg", items[1].Files["it"].Filename)
	assert.Equal(t, "Ultimo", items[2].Title["it"])
}

func TestParseMediaAttrs(t *testing.T) {
	form := buildForm(t, map[string]string{
		"custom_properties": `{"room":"B2"}`,
	}, nil)
	form.Value["tags[]"] = []string{"sculpture", "marble"}

	attrs, err := parseMediaAttrs(form)
	require.NoError(t, err)
	require.NotNil(t, attrs)
	assert.Equal(t, pq.StringArray{"sculpture", "marble"}, attrs.Tags)
	assert.Equal(t, "B2", attrs.CustomProperties["room"])
}

func TestParseMediaAttrsAbsent(t *testing.T) {
	form := buildForm(t, map[string]string{"name[it]": "Museo"}, nil)
	attrs, err := parseMediaAttrs(form)
	require.NoError(t, err)
	assert.Nil(t, attrs)
}

func TestParseMediaAttrsBadJSON(t *testing.T) {
	form := buildForm(t, map[string]string{"custom_properties": "not-json"}, nil)
	_, err := parseMediaAttrs(form)
	assert.Error(t, err)
}

func TestParseGalleryInputsAbsent(t *testing.T) {
	form := buildForm(t, map[string]string{"name[it]": "Museo"}, nil)
	assert.Nil(t, ParseGalleryInputs(form, "images"), "absent field means the gallery was not submitted")
}
