package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkovalev/accountd/internal/common"
	"github.com/dkovalev/accountd/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDoc is the stored shape of a user record. Kept separate from
// models.User so storage tags never bleed into the domain type.
type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{ID: d.ID.Hex(), Email: d.Email, PasswordHash: d.Password}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureCollection creates the collection if absent and enforces email
// uniqueness with an index. Index creation is idempotent.
func (r *MongoRepository) EnsureCollection(ctx context.Context) error {
	db := r.coll.Database()

	err := db.CreateCollection(ctx, r.coll.Name())
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
			return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
		}
	}

	_, err = r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := r.coll.InsertOne(ctx, userDoc{Email: user.Email, Password: user.PasswordHash})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("store error: unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()

	return user, nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a valid store id, so no record can match.
		return nil, common.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	doc := &userDoc{}
	err := r.coll.FindOne(ctx, filter).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("store error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) ListPage(ctx context.Context, pageSize int) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(int64(pageSize)))
	if err != nil {
		return nil, fmt.Errorf("store error: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []userDoc{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("store error: %w", err)
	}

	items := make([]models.User, 0, len(docs))
	for i := range docs {
		items = append(items, *docs[i].toModel())
	}

	return items, nil
}
