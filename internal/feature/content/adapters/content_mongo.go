// Package adapters はcontentフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"regexp"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cms_backend/internal/feature/content/domain/entity"
	"cms_backend/internal/feature/content/usecase"
	platformmongo "cms_backend/internal/platform/mongo"
	"cms_backend/internal/shared/objectid"
)

type contentDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	CategoryID  *string       `bson:"category_id"`
	AuthorID    *string       `bson:"author_id"`
	ImageURL    *string       `bson:"image_url"`
	Tags        []string      `bson:"tags"`
	CreatedAt   time.Time     `bson:"created_at"`
}

func (d *contentDocument) toEntity() entity.ContentItem {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return entity.ContentItem{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		CategoryID:  d.CategoryID,
		AuthorID:    d.AuthorID,
		ImageURL:    d.ImageURL,
		Tags:        tags,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type contentMongo struct {
	coll *mongo.Collection
}

var (
	_ usecase.ContentRepository = (*contentMongo)(nil)
	_ platformmongo.Indexer     = (*contentMongo)(nil)
)

// NewContentMongo は content_items コレクションのリポジトリを生成します。
func NewContentMongo(db *mongo.Database) *contentMongo {
	return &contentMongo{coll: db.Collection(platformmongo.CollectionContent)}
}

// List は条件に一致するアイテムを created_at の新しい順に返します。
func (r *contentMongo) List(ctx context.Context, f usecase.ListFilter) ([]entity.ContentItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(f.Limit))
	cur, err := r.coll.Find(ctx, listFilter(f), opts)
	if err != nil {
		return nil, oops.In("content_mongo").With("category", f.Category).Wrapf(err, "list content items")
	}
	var docs []contentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.In("content_mongo").Wrapf(err, "decode content items")
	}
	out := make([]entity.ContentItem, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

// FindByID はIDでアイテムを取得します。
// 存在しない場合、usecase.ErrContentNotFoundを返します。
func (r *contentMongo) FindByID(ctx context.Context, id string) (*entity.ContentItem, error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return nil, usecase.ErrContentNotFound
	}
	var doc contentDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if platformmongo.IsNoDocuments(err) {
			return nil, usecase.ErrContentNotFound
		}
		return nil, oops.In("content_mongo").With("id", id).Wrapf(err, "find content item")
	}
	item := doc.toEntity()
	return &item, nil
}

// Create はアイテムを追加しIDを採番します。
func (r *contentMongo) Create(ctx context.Context, item *entity.ContentItem) error {
	doc := contentDocument{
		ID:          bson.NewObjectID(),
		Title:       item.Title,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		AuthorID:    item.AuthorID,
		ImageURL:    item.ImageURL,
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return oops.In("content_mongo").With("title", item.Title).Wrapf(err, "insert content item")
	}
	item.ID = doc.ID.Hex()
	return nil
}

// Update はパッチのフィールドを $set し、更新後のドキュメントを返します。
func (r *contentMongo) Update(ctx context.Context, id string, patch entity.ContentPatch) (*entity.ContentItem, error) {
	oid, ok := objectid.Parse(id)
	set := updateSet(patch)
	if !ok || len(set) == 0 {
		return nil, usecase.ErrContentNotFound
	}

	var doc contentDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if platformmongo.IsNoDocuments(err) {
			return nil, usecase.ErrContentNotFound
		}
		return nil, oops.In("content_mongo").With("id", id).Wrapf(err, "update content item")
	}
	item := doc.toEntity()
	return &item, nil
}

// Delete はアイテムを削除し、削除できたかどうかを返します。
func (r *contentMongo) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, oops.In("content_mongo").With("id", id).Wrapf(err, "delete content item")
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes はテキスト・カテゴリ・作成日時のインデックスを作成します。
func (r *contentMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("title_description_text"),
		},
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetName("category_id"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
	})
	if err != nil {
		return oops.In("content_mongo").Wrapf(err, "create content_items indexes")
	}
	return nil
}

// listFilter はクエリドキュメントを組み立てます。検索語はリテラル一致するようエスケープします。
func listFilter(f usecase.ListFilter) bson.D {
	filter := bson.D{}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category_id", Value: f.Category})
	}
	if f.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "tags", Value: re}},
		}})
	}
	return filter
}

// updateSet は patch の非nilフィールドから $set ドキュメントを組み立てます。
func updateSet(patch entity.ContentPatch) bson.D {
	var set bson.D
	add := func(key string, v *string) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}
	add("title", patch.Title)
	add("description", patch.Description)
	add("category_id", patch.CategoryID)
	add("author_id", patch.AuthorID)
	add("image_url", patch.ImageURL)
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set = append(set, bson.E{Key: "tags", Value: tags})
	}
	return set
}
