// Package adapters はauthorフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cms_backend/internal/feature/author/domain/entity"
	"cms_backend/internal/feature/author/usecase"
	platformmongo "cms_backend/internal/platform/mongo"
	"cms_backend/internal/shared/objectid"
)

type authorDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Bio       *string       `bson:"bio"`
	AvatarURL *string       `bson:"avatar_url"`
}

func (d *authorDocument) toEntity() entity.Author {
	return entity.Author{ID: d.ID.Hex(), Name: d.Name, Bio: d.Bio, AvatarURL: d.AvatarURL}
}

type authorMongo struct {
	coll *mongo.Collection
}

var (
	_ usecase.AuthorRepository = (*authorMongo)(nil)
	_ platformmongo.Indexer    = (*authorMongo)(nil)
)

// NewAuthorMongo は authors コレクションのリポジトリを生成します。
func NewAuthorMongo(db *mongo.Database) *authorMongo {
	return &authorMongo{coll: db.Collection(platformmongo.CollectionAuthors)}
}

// List はID順に最大 limit 件の著者を取得します。
func (r *authorMongo) List(ctx context.Context, limit int) ([]entity.Author, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, oops.In("author_mongo").Wrapf(err, "list authors")
	}
	var docs []authorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, oops.In("author_mongo").Wrapf(err, "decode authors")
	}
	out := make([]entity.Author, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

// FindByID はIDで著者を取得します。
// 存在しない場合、usecase.ErrAuthorNotFoundを返します。
func (r *authorMongo) FindByID(ctx context.Context, id string) (*entity.Author, error) {
	oid, ok := objectid.Parse(id)
	if !ok {
		return nil, usecase.ErrAuthorNotFound
	}
	var doc authorDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if platformmongo.IsNoDocuments(err) {
			return nil, usecase.ErrAuthorNotFound
		}
		return nil, oops.In("author_mongo").With("id", id).Wrapf(err, "find author")
	}
	a := doc.toEntity()
	return &a, nil
}

// Create は著者を追加しIDを採番します。
func (r *authorMongo) Create(ctx context.Context, a *entity.Author) error {
	doc := authorDocument{ID: bson.NewObjectID(), Name: a.Name, Bio: a.Bio, AvatarURL: a.AvatarURL}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return oops.In("author_mongo").Wrapf(err, "insert author")
	}
	a.ID = doc.ID.Hex()
	return nil
}

// EnsureIndexes は name の非ユニークインデックスを作成します。
func (r *authorMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name"),
	})
	if err != nil {
		return oops.In("author_mongo").Wrapf(err, "create authors indexes")
	}
	return nil
}
