package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/config"
	"github.com/fucina/flexhibition-api/models"
)

// memDisk is an in-memory Disk for tests. failPutAt makes the n-th Put (and
// every later one) fail; failDelete makes every Delete fail.
type memDisk struct {
	mu         sync.Mutex
	files      map[string][]byte
	puts       int
	failPutAt  int
	failDelete bool
}

func newMemDisk() *memDisk {
	return &memDisk{files: map[string][]byte{}}
}

func (d *memDisk) Put(_ context.Context, path string, r io.Reader) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.puts++
	if d.failPutAt != 0 && d.puts >= d.failPutAt {
		return "", errors.New("disk full")
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	d.files[path] = content
	return path, nil
}

func (d *memDisk) URL(path string) string {
	return "/files/" + path
}

func (d *memDisk) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failDelete {
		return errors.New("delete refused")
	}
	delete(d.files, path)
	return nil
}

func (d *memDisk) PathFromURL(url string) string {
	if !strings.HasPrefix(url, "/files/") {
		return ""
	}
	return strings.TrimPrefix(url, "/files/")
}

func (d *memDisk) has(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*MediaService, *memDisk) {
	t.Helper()
	disk := newMemDisk()
	return NewMediaService(testDB(t), disk, nil), disk
}

// uploadFile builds a real multipart.FileHeader the way gin would hand it to
// a controller.
func uploadFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func TestCreateMediaMultiLanguage(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{
		"it": uploadFile(t, "quadro.jpg", []byte("it-bytes")),
		"en": uploadFile(t, "painting.jpg", []byte("en-bytes")),
	}
	titles := models.Translations{"it": "Quadro", "en": "Painting"}

	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, titles, nil, "", nil)
	require.NoError(t, err)
	require.NotZero(t, media.ID)

	assert.Equal(t, models.MediaTypeImage, media.Type)
	assert.Equal(t, "Quadro", media.Title["it"])
	assert.Equal(t, "Painting", media.Title["en"])
	assert.Len(t, media.URL, 2)
	assert.Equal(t, 2, disk.count())

	for lang, url := range media.URL {
		path := disk.PathFromURL(url)
		assert.True(t, disk.has(path), "file for %s should exist at %s", lang, path)
		assert.True(t, strings.HasPrefix(path, "media/images/"), "path %s should live in the image folder", path)
	}

	var stored models.Media
	require.NoError(t, svc.DB.First(&stored, media.ID).Error)
	assert.Equal(t, media.URL, stored.URL)
}

func TestCreateMediaValidation(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	jpg := func() map[string]*multipart.FileHeader {
		return map[string]*multipart.FileHeader{"it": uploadFile(t, "a.jpg", []byte("x"))}
	}
	titles := models.Translations{"it": "Titolo"}

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.CreateMedia(ctx, "hologram", jpg(), titles, nil, "", nil)
		assert.ErrorIs(t, err, ErrInvalidMediaType)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := svc.CreateMedia(ctx, models.MediaTypeImage, nil, titles, nil, "", nil)
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("missing title for a language", func(t *testing.T) {
		_, err := svc.CreateMedia(ctx, models.MediaTypeImage, jpg(), models.Translations{"en": "Title"}, nil, "", nil)
		assert.ErrorIs(t, err, ErrMissingTitle)
	})

	t.Run("extension not allowed", func(t *testing.T) {
		files := map[string]*multipart.FileHeader{"it": uploadFile(t, "a.exe", []byte("x"))}
		_, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, titles, nil, "", nil)
		assert.ErrorIs(t, err, ErrExtensionNotAllowed)
	})

	t.Run("file too large", func(t *testing.T) {
		files := map[string]*multipart.FileHeader{
			"it": {Filename: "big.png", Size: 3 << 20},
		}
		_, err := svc.CreateMedia(ctx, models.MediaTypeQr, files, titles, nil, "", nil)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	// Validation happens before any I/O.
	assert.Equal(t, 0, disk.count())
	var count int64
	require.NoError(t, svc.DB.Model(&models.Media{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateMediaRollsBackOnStorageFailure(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	disk.failPutAt = 2

	files := map[string]*multipart.FileHeader{
		"it": uploadFile(t, "a.jpg", []byte("it")),
		"en": uploadFile(t, "b.jpg", []byte("en")),
	}
	titles := models.Translations{"it": "A", "en": "B"}

	_, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, titles, nil, "", nil)
	require.Error(t, err)

	// The file stored before the failure was compensated away and no record
	// was committed.
	assert.Equal(t, 0, disk.count())
	var count int64
	require.NoError(t, svc.DB.Model(&models.Media{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMediaAttrsPersist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{"it": uploadFile(t, "statua.jpg", []byte("x"))}
	attrs := &MediaAttrs{
		Tags:             pq.StringArray{"sculpture", "marble"},
		CustomProperties: datatypes.JSONMap{"room": "B2", "century": "XVI"},
	}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "Statua"}, nil, "", attrs)
	require.NoError(t, err)

	var stored models.Media
	require.NoError(t, svc.DB.First(&stored, media.ID).Error)
	assert.Equal(t, pq.StringArray{"sculpture", "marble"}, stored.Tags)
	assert.Equal(t, "B2", stored.CustomProperties["room"])

	payload := FormatMedia(&stored)
	assert.Equal(t, stored.Tags, payload.Tags)
	assert.Equal(t, "XVI", payload.CustomProperties["century"])

	// A submitted attrs field replaces the stored value; an omitted one
	// stays put.
	_, err = svc.UpdateMedia(ctx, media.ID, nil, nil, nil, "", &MediaAttrs{Tags: pq.StringArray{"bronze"}})
	require.NoError(t, err)
	require.NoError(t, svc.DB.First(&stored, media.ID).Error)
	assert.Equal(t, pq.StringArray{"bronze"}, stored.Tags)
	assert.Equal(t, "B2", stored.CustomProperties["room"])
}

func TestUpdateMediaCompensatesOnStorageFailure(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{
		"it": uploadFile(t, "a.jpg", []byte("it-old")),
		"en": uploadFile(t, "b.jpg", []byte("en-old")),
	}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "A", "en": "B"}, nil, "", nil)
	require.NoError(t, err)

	// The first replacement upload lands, the second fails mid-update.
	disk.failPutAt = disk.puts + 2

	newFiles := map[string]*multipart.FileHeader{
		"it": uploadFile(t, "a2.jpg", []byte("it-new")),
		"en": uploadFile(t, "b2.jpg", []byte("en-new")),
	}
	_, err = svc.UpdateMedia(ctx, media.ID, newFiles, models.Translations{"it": "A2", "en": "B2"}, nil, "", nil)
	require.Error(t, err)

	// The partial upload was compensated away; the record and both old
	// files are untouched.
	assert.Equal(t, 2, disk.count())
	for lang, url := range media.URL {
		assert.True(t, disk.has(disk.PathFromURL(url)), "old file for %s must survive", lang)
	}

	var stored models.Media
	require.NoError(t, svc.DB.First(&stored, media.ID).Error)
	assert.Equal(t, media.URL, stored.URL)
	assert.Equal(t, "A", stored.Title["it"])
}

func TestCreateMediaFromBytes(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string][]byte{"it": []byte("png-it"), "en": []byte("png-en")}
	media, err := svc.CreateMediaFromBytes(ctx, models.MediaTypeQr, files, "png",
		models.Translations{"it": "QR", "en": "QR"}, nil, "")
	require.NoError(t, err)

	assert.Len(t, media.URL, 2)
	assert.Equal(t, 2, disk.count())
	for _, url := range media.URL {
		path := disk.PathFromURL(url)
		assert.True(t, strings.HasPrefix(path, "media/qr-codes/"))
		assert.True(t, strings.HasSuffix(path, ".png"))
	}
}

func TestUpdateMediaMetadataOnly(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{"it": uploadFile(t, "a.jpg", []byte("x"))}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "Prima"}, nil, "", nil)
	require.NoError(t, err)
	putsBefore := disk.puts

	updated, err := svc.UpdateMedia(ctx, media.ID, nil, models.Translations{"it": "Dopo", "en": "After"}, nil, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Dopo", updated.Title["it"])
	assert.Equal(t, "After", updated.Title["en"])
	assert.Equal(t, media.URL, updated.URL)
	assert.Equal(t, putsBefore, disk.puts, "metadata-only update must not touch storage")
}

func TestUpdateMediaReplacesFile(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{"it": uploadFile(t, "old.jpg", []byte("old"))}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "T"}, nil, "", nil)
	require.NoError(t, err)
	oldPath := disk.PathFromURL(media.URL["it"])
	require.True(t, disk.has(oldPath))

	newFiles := map[string]*multipart.FileHeader{"it": uploadFile(t, "new.jpg", []byte("new"))}
	updated, err := svc.UpdateMedia(ctx, media.ID, newFiles, nil, nil, "", nil)
	require.NoError(t, err)

	newPath := disk.PathFromURL(updated.URL["it"])
	assert.NotEqual(t, oldPath, newPath)
	assert.False(t, disk.has(oldPath), "old file should be removed after commit")
	assert.True(t, disk.has(newPath))
	assert.Equal(t, "T", updated.Title["it"], "title untouched when not resubmitted")
}

func TestUpdateMediaNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateMedia(context.Background(), 999, nil, models.Translations{"it": "x"}, nil, "", nil)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestDeleteMedia(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{
		"it": uploadFile(t, "a.jpg", []byte("it")),
		"en": uploadFile(t, "b.jpg", []byte("en")),
	}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "A", "en": "B"}, nil, "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedia(ctx, media.ID))
	assert.Equal(t, 0, disk.count())

	err = svc.DeleteMedia(ctx, media.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestDeleteMediaSurvivesStorageFailure(t *testing.T) {
	svc, disk := newTestService(t)
	ctx := context.Background()

	files := map[string]*multipart.FileHeader{"it": uploadFile(t, "a.jpg", []byte("x"))}
	media, err := svc.CreateMedia(ctx, models.MediaTypeImage, files, models.Translations{"it": "T"}, nil, "", nil)
	require.NoError(t, err)

	disk.failDelete = true
	require.NoError(t, svc.DeleteMedia(ctx, media.ID), "record deletion wins even when file cleanup fails")

	var stored models.Media
	err = svc.DB.First(&stored, media.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetMediaByType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateMediaFromURLs(ctx, models.MediaTypeImage, models.Translations{"it": "/x.jpg"}, models.Translations{"it": "X"}, nil)
	require.NoError(t, err)
	_, err = svc.CreateMediaFromURLs(ctx, models.MediaTypeAudio, models.Translations{"it": "/x.mp3"}, models.Translations{"it": "X"}, nil)
	require.NoError(t, err)

	images, err := svc.GetMediaByType(ctx, models.MediaTypeImage)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, models.MediaTypeImage, images[0].Type)
}

func TestFormatMedia(t *testing.T) {
	payload := FormatMedia(nil)
	assert.NotNil(t, payload.URL)
	assert.NotNil(t, payload.Title)
	assert.NotNil(t, payload.Description)

	m := &models.Media{
		Type:  models.MediaTypeImage,
		URL:   models.Translations{"it": "/a.jpg"},
		Title: models.Translations{"it": "A"},
	}
	m.ID = 5
	payload = FormatMedia(m)
	assert.Equal(t, uint(5), payload.ID)
	assert.Equal(t, "/a.jpg", payload.URL["it"])
}
