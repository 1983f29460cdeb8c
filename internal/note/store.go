package note

import (
	"context"
	"errors"

	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/qdrant/go-client/qdrant"
	"gorm.io/gorm"
)

const notesCollection = "notes"

type Store struct {
	db     *gorm.DB
	qdrant *qdrant.Client
}

func NewStore(db *gorm.DB, qdrantClient *qdrant.Client) *Store {
	return &Store{db: db, qdrant: qdrantClient}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Note{}, &Folder{}, &Tag{})
}

func (s *Store) Create(ctx context.Context, n *Note) error {
	if n.ID == "" {
		n.ID = shared.NewID("note_")
	}
	if n.Tags == nil {
		n.Tags = TagIDs{}
	}
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *Store) GetByID(ctx context.Context, id, userID string) (*Note, error) {
	var n Note
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string, folderID *string) ([]*Note, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if folderID != nil {
		q = q.Where("folder_id = ?", *folderID)
	}
	var notes []*Note
	err := q.Order("pinned DESC, updated_at DESC").Find(&notes).Error
	return notes, err
}

func (s *Store) Update(ctx context.Context, id, userID string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&Note{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id, userID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) SearchByEmbedding(ctx context.Context, userID string, embedding []float32, limit int) ([]*Note, error) {
	if s.qdrant == nil {
		return nil, errors.New("qdrant client not configured")
	}

	results, err := s.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: notesCollection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.Id != nil {
			if uuid := r.Id.GetUuid(); uuid != "" {
				ids = append(ids, uuid)
			}
		}
	}

	if len(ids) == 0 {
		return []*Note{}, nil
	}

	var notes []*Note
	err = s.db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userID).Find(&notes).Error
	return notes, err
}

func (s *Store) UpsertEmbedding(ctx context.Context, noteID string, embedding []float32) error {
	if s.qdrant == nil {
		return errors.New("qdrant client not configured")
	}

	_, err := s.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: notesCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(noteID),
				Vectors: qdrant.NewVectors(embedding...),
			},
		},
	})
	return err
}

func (s *Store) DeleteEmbedding(ctx context.Context, noteID string) error {
	if s.qdrant == nil {
		return errors.New("qdrant client not configured")
	}

	_, err := s.qdrant.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: notesCollection,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(noteID)),
	})
	return err
}

func (s *Store) CreateFolder(ctx context.Context, f *Folder) error {
	if f.ID == "" {
		f.ID = shared.NewID("nfold_")
	}
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *Store) ListFolders(ctx context.Context, userID string) ([]*Folder, error) {
	var folders []*Folder
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&folders).Error
	return folders, err
}

func (s *Store) DeleteFolder(ctx context.Context, id, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Folder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Model(&Note{}).
			Where("folder_id = ? AND user_id = ?", id, userID).
			Update("folder_id", nil).Error
	})
}

func (s *Store) CreateTag(ctx context.Context, t *Tag) error {
	if t.ID == "" {
		t.ID = shared.NewID("tag_")
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&Tag{}).
		Where("user_id = ? AND name = ?", t.UserID, t.Name).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &shared.ConflictError{Field: "name"}
	}
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) ListTags(ctx context.Context, userID string) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *Store) DeleteTag(ctx context.Context, id, userID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
