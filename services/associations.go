package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/models"
)

// Gallery identifies one parent gallery join table. The three parent types
// share the same membership semantics, so the association operations are
// parameterized over this descriptor instead of being copied per parent.
type Gallery struct {
	JoinTable string
	ParentKey string
}

var (
	MuseumGallery     = Gallery{JoinTable: "museum_images", ParentKey: "museum_id"}
	ExhibitionGallery = Gallery{JoinTable: "exhibition_images", ParentKey: "exhibition_id"}
	PostGallery       = Gallery{JoinTable: "post_images", ParentKey: "post_id"}
)

// Attach inserts one membership row.
func (s *MediaService) Attach(ctx context.Context, g Gallery, parentID, mediaID uint) error {
	return s.attach(s.DB.WithContext(ctx), g, parentID, mediaID)
}

func (s *MediaService) attach(db *gorm.DB, g Gallery, parentID, mediaID uint) error {
	now := time.Now()
	return db.Table(g.JoinTable).Create(map[string]interface{}{
		g.ParentKey:  parentID,
		"media_id":   mediaID,
		"created_at": now,
		"updated_at": now,
	}).Error
}

// Detach removes matching membership rows and returns how many were removed.
func (s *MediaService) Detach(ctx context.Context, g Gallery, parentID, mediaID uint) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND media_id = ?", g.JoinTable, g.ParentKey),
		parentID, mediaID,
	)
	return res.RowsAffected, res.Error
}

// Sync replaces the whole membership set for a parent: delete everything,
// insert the supplied set, in one transaction. Join rows of retained members
// are recreated, so their created_at resets; galleries are small and nothing
// reads those timestamps.
func (s *MediaService) Sync(ctx context.Context, g Gallery, parentID uint, mediaIDs []uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ?", g.JoinTable, g.ParentKey),
			parentID,
		).Error; err != nil {
			return err
		}
		for _, mediaID := range mediaIDs {
			if err := s.attach(tx, g, parentID, mediaID); err != nil {
				return err
			}
		}
		return nil
	})
}

// AttachedIDs returns the media ids currently in a parent's gallery.
func (s *MediaService) AttachedIDs(ctx context.Context, g Gallery, parentID uint) ([]uint, error) {
	var ids []uint
	err := s.DB.WithContext(ctx).Table(g.JoinTable).
		Where(fmt.Sprintf("%s = ?", g.ParentKey), parentID).
		Order("media_id").
		Pluck("media_id", &ids).Error
	return ids, err
}

// GalleryMedia loads the media records of a parent's gallery.
func (s *MediaService) GalleryMedia(ctx context.Context, g Gallery, parentID uint) ([]models.Media, error) {
	ids, err := s.AttachedIDs(ctx, g, parentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Media{}, nil
	}

	var media []models.Media
	err = s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&media).Error
	return media, err
}
