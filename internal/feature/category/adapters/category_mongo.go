// Package adapters はcategoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cms_backend/internal/feature/category/domain/entity"
	"cms_backend/internal/feature/category/usecase"
	platformmongo "cms_backend/internal/platform/mongo"
	"cms_backend/internal/shared/objectid"
)

type categoryDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Slug        string        `bson:"slug"`
	Description *string       `bson:"description"`
}

func (d *categoryDocument) toEntity() entity.Category {
	return entity.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
	}
}

type categoryMongo struct {
	coll *mongo.Collection
}

var (
	_ usecase.CategoryRepository = (*categoryMongo)(nil)
	_ platformmongo.Indexer      = (*categoryMongo)(nil)
)

// NewCategoryMongo は categories コレクションのリポジトリを生成します。
func NewCategoryMongo(db *mongo.Database) *categoryMongo {
	return &categoryMongo{coll: db.Collection(platformmongo.CollectionCategories)}
}

// List はID順に最大 limit 件のカテゴリを取得します。
func (r *categoryMongo) List(ctx context.Context, limit int) ([]entity.Category, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, oops.In("category_mongo").Wrapf(err, "list categories")
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.In("category_mongo").Wrapf(err, "decode categories")
	}
	out := make([]entity.Category, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

// FindByID はIDでカテゴリを取得します。
// 存在しない場合、usecase.ErrCategoryNotFoundを返します。
func (r *categoryMongo) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return nil, usecase.ErrCategoryNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// FindBySlug は slug でカテゴリを取得します。
// 存在しない場合、usecase.ErrCategoryNotFoundを返します。
func (r *categoryMongo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *categoryMongo) findOne(ctx context.Context, filter bson.D) (*entity.Category, error) {
	var doc categoryDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if platformmongo.IsNoDocuments(err) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, oops.In("category_mongo").With("filter", filter).Wrapf(err, "find category")
	}
	c := doc.toEntity()
	return &c, nil
}

// Create はカテゴリを追加しIDを採番します。
func (r *categoryMongo) Create(ctx context.Context, c *entity.Category) error {
	doc := categoryDocument{
		ID:          bson.NewObjectID(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if platformmongo.IsDuplicateKey(err) {
			return usecase.ErrSlugAlreadyExists
		}
		return oops.In("category_mongo").With("slug", c.Slug).Wrapf(err, "insert category")
	}
	c.ID = doc.ID.Hex()
	return nil
}

// Update はパッチのフィールドを $set し、更新後のドキュメントを返します。
func (r *categoryMongo) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	oid, ok := objectid.Parse(id)
	set := updateSet(patch)
	if !ok || len(set) == 0 {
		return nil, usecase.ErrCategoryNotFound
	}

	var doc categoryDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	switch {
	case err == nil:
		c := doc.toEntity()
		return &c, nil
	case platformmongo.IsNoDocuments(err):
		return nil, usecase.ErrCategoryNotFound
	case platformmongo.IsDuplicateKey(err):
		return nil, usecase.ErrSlugAlreadyExists
	default:
		return nil, oops.In("category_mongo").With("id", id).Wrapf(err, "update category")
	}
}

// Delete はカテゴリを削除し、削除できたかどうかを返します。
func (r *categoryMongo) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, oops.In("category_mongo").With("id", id).Wrapf(err, "delete category")
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes は slug のユニークインデックスを作成します。
func (r *categoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	})
	if err != nil {
		return oops.In("category_mongo").Wrapf(err, "create categories indexes")
	}
	return nil
}

// updateSet は patch の非nilフィールドから $set ドキュメントを組み立てます。
func updateSet(patch entity.CategoryPatch) bson.D {
	var set bson.D
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Slug != nil {
		set = append(set, bson.E{Key: "slug", Value: *patch.Slug})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	return set
}
