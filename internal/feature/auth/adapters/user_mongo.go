// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cms_backend/internal/feature/auth/domain/entity"
	"cms_backend/internal/feature/auth/usecase"
	platformmongo "cms_backend/internal/platform/mongo"
)

type userDocument struct {
	ID             bson.ObjectID `bson:"_id"`
	Email          string        `bson:"email"`
	HashedPassword string        `bson:"hashed_password"`
	FullName       string        `bson:"full_name"`
	IsActive       bool          `bson:"is_active"`
	CreatedAt      time.Time     `bson:"created_at"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		FullName:       d.FullName,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	coll *mongo.Collection
}

// userMongoがUserRepositoryを実装していることをコンパイル時に検証します。
var (
	_ usecase.UserRepository = (*userMongo)(nil)
	_ platformmongo.Indexer  = (*userMongo)(nil)
)

// NewUserMongo は指定されたデータベースのusersコレクションを使うリポジトリを生成します。
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(platformmongo.CollectionUsers)}
}

// Create はユーザーを追加しIDを採番します。
// email のユニークインデックス違反は usecase.ErrEmailAlreadyExists に変換します。
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	doc := userDocument{
		ID:             bson.NewObjectID(),
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		FullName:       u.FullName,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if platformmongo.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return oops.In("user_mongo").Wrapf(err, "insert user")
	}
	u.ID = doc.ID.Hex()
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		if platformmongo.IsNoDocuments(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, oops.In("user_mongo").Wrapf(err, "find user by email")
	}
	return doc.toEntity(), nil
}

// EnsureIndexes は email のユニークインデックスを作成します。
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return oops.In("user_mongo").Wrapf(err, "create users indexes")
	}
	return nil
}
