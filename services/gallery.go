package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/fucina/flexhibition-api/models"
)

// MediaInput is one media slot as submitted by the admin form:
// an optional existing id, a deletion flag, per-language files and the
// title/description maps. Nil maps mean "not submitted".
type MediaInput struct {
	ID          uint
	ToDelete    bool
	Files       map[string]*multipart.FileHeader
	Title       models.Translations
	Description models.Translations
}

func (in *MediaInput) hasFiles() bool {
	return in != nil && len(in.Files) > 0
}

func (in *MediaInput) hasMetadata() bool {
	return in != nil && (in.Title != nil || in.Description != nil)
}

// IsEmpty reports whether the slot carries nothing to act on.
func (in *MediaInput) IsEmpty() bool {
	return in == nil || (!in.ToDelete && !in.hasFiles() && !in.hasMetadata() && in.ID == 0)
}

// UpdateGallery reconciles a parent's gallery against the submitted item
// list:
//
//  1. items flagged to_delete with an id delete the underlying media;
//  2. items with an id are updated in place and kept;
//  3. items with a file but no id create new media;
//  4. membership is replaced via Sync and any media attached before but
//     absent from the kept set is deleted as an orphan.
//
// Every submitted media id thus either stays in the attached set or is
// deleted; none is left dangling.
func (s *MediaService) UpdateGallery(
	ctx context.Context,
	g Gallery,
	parentID uint,
	mediaType models.MediaType,
	items []MediaInput,
) error {
	current, err := s.AttachedIDs(ctx, g, parentID)
	if err != nil {
		return err
	}

	var kept []uint
	for i := range items {
		item := &items[i]

		if item.ToDelete && item.ID != 0 {
			if err := s.DeleteMedia(ctx, item.ID); err != nil {
				return err
			}
			continue
		}

		if item.ID != 0 {
			if item.hasFiles() || item.hasMetadata() {
				if _, err := s.UpdateMedia(ctx, item.ID, item.Files, item.Title, item.Description, "", nil); err != nil {
					return err
				}
			}
			kept = append(kept, item.ID)
			continue
		}

		if item.hasFiles() {
			media, err := s.CreateMedia(ctx, mediaType, item.Files, item.Title, item.Description, "", nil)
			if err != nil {
				return err
			}
			kept = append(kept, media.ID)
		}
	}

	if err := s.Sync(ctx, g, parentID, kept); err != nil {
		return err
	}

	keep := make(map[uint]bool, len(kept))
	for _, id := range kept {
		keep[id] = true
	}
	for _, id := range current {
		if keep[id] {
			continue
		}
		// Items flagged to_delete are already gone at this point.
		if err := s.DeleteMedia(ctx, id); err != nil && !errors.Is(err, ErrMediaNotFound) {
			return err
		}
	}

	return nil
}

// UpdateSlot applies a submitted item to a singular media slot (logo, audio,
// section image) and returns the slot's new media id:
//
//   - to_delete removes the current media and empties the slot;
//   - a file with a matching id replaces the current media in place;
//   - a file without a matching id creates new media and deletes the old one;
//   - title/description alone update metadata without touching storage.
func (s *MediaService) UpdateSlot(
	ctx context.Context,
	current *uint,
	in *MediaInput,
	mediaType models.MediaType,
) (*uint, error) {
	if in == nil {
		return current, nil
	}

	if in.ToDelete && current != nil {
		if err := s.DeleteMedia(ctx, *current); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if in.hasFiles() {
		if current != nil && in.ID != 0 && in.ID == *current {
			if _, err := s.UpdateMedia(ctx, *current, in.Files, in.Title, in.Description, "", nil); err != nil {
				return nil, err
			}
			return current, nil
		}

		if current != nil {
			if err := s.DeleteMedia(ctx, *current); err != nil {
				return nil, err
			}
		}
		media, err := s.CreateMedia(ctx, mediaType, in.Files, in.Title, in.Description, "", nil)
		if err != nil {
			return nil, err
		}
		return &media.ID, nil
	}

	if current != nil && in.hasMetadata() {
		if _, err := s.UpdateMedia(ctx, *current, nil, in.Title, in.Description, "", nil); err != nil {
			return nil, err
		}
	}

	return current, nil
}
