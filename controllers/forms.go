package controllers

import (
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/services"
)

// The admin forms post per-language fields as name[it], name[en] and media
// slots as audio[file][it], audio[title][it], audio[id], audio[to_delete];
// gallery items add an index: images[0][file][it]. Gin binds flat structs but
// not these nested file maps, so the multipart form is walked by hand here.

// formLangMap collects prefix[lang] values into a Translations map. Returns
// nil when no key with that prefix was submitted, so callers can distinguish
// "absent" from "empty".
func formLangMap(values map[string][]string, prefix string) models.Translations {
	var t models.Translations
	open := prefix + "["
	for key, vals := range values {
		if !strings.HasPrefix(key, open) || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		lang := key[len(open) : len(key)-1]
		if lang == "" || strings.ContainsAny(lang, "[]") {
			continue
		}
		if t == nil {
			t = models.Translations{}
		}
		t[lang] = vals[0]
	}
	return t
}

// formLangFiles collects prefix[lang] file headers.
func formLangFiles(files map[string][]*multipart.FileHeader, prefix string) map[string]*multipart.FileHeader {
	var out map[string]*multipart.FileHeader
	open := prefix + "["
	for key, headers := range files {
		if !strings.HasPrefix(key, open) || !strings.HasSuffix(key, "]") || len(headers) == 0 {
			continue
		}
		lang := key[len(open) : len(key)-1]
		if lang == "" || strings.ContainsAny(lang, "[]") {
			continue
		}
		if out == nil {
			out = map[string]*multipart.FileHeader{}
		}
		out[lang] = headers[0]
	}
	return out
}

func formValue(form *multipart.Form, key string) string {
	if vals, ok := form.Value[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// ParseMediaInput reads one media slot rooted at prefix. Returns nil when the
// form carried nothing for that slot.
func ParseMediaInput(form *multipart.Form, prefix string) *services.MediaInput {
	in := &services.MediaInput{
		Files:       formLangFiles(form.File, prefix+"[file]"),
		Title:       formLangMap(form.Value, prefix+"[title]"),
		Description: formLangMap(form.Value, prefix+"[description]"),
	}
	if v := formValue(form, prefix+"[id]"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			in.ID = uint(id)
		}
	}
	if v := formValue(form, prefix+"[to_delete]"); v != "" {
		in.ToDelete, _ = strconv.ParseBool(v)
	}

	if in.IsEmpty() {
		return nil
	}
	return in
}

var galleryIndexPattern = regexp.MustCompile(`^\[(\d+)\]`)

// ParseGalleryInputs reads the indexed media slots rooted at field
// (field[0], field[1], ...), preserving index order. Returns nil when the
// field was not submitted at all.
func ParseGalleryInputs(form *multipart.Form, field string) []services.MediaInput {
	indexes := map[int]bool{}
	collect := func(key string) {
		if !strings.HasPrefix(key, field) {
			return
		}
		m := galleryIndexPattern.FindStringSubmatch(key[len(field):])
		if m == nil {
			return
		}
		if i, err := strconv.Atoi(m[1]); err == nil {
			indexes[i] = true
		}
	}
	for key := range form.Value {
		collect(key)
	}
	for key := range form.File {
		collect(key)
	}
	if len(indexes) == 0 {
		return nil
	}

	ordered := make([]int, 0, len(indexes))
	for i := range indexes {
		ordered = append(ordered, i)
	}
	sort.Ints(ordered)

	items := make([]services.MediaInput, 0, len(ordered))
	for _, i := range ordered {
		if in := ParseMediaInput(form, field+"["+strconv.Itoa(i)+"]"); in != nil {
			items = append(items, *in)
		}
	}
	return items
}
