package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sethu9398/e-commerce/internal/domain"
)

// ConnectMongo dials the mongo deployment and pings it before returning
// the database handle.
func ConnectMongo(ctx context.Context, uri, db string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(db), nil
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// MongoUsers stores accounts in the "users" collection.
type MongoUsers struct{ coll *mongo.Collection }

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection("users")}
}

var _ UserRepository = (*MongoUsers)(nil)

func (r *MongoUsers) Create(ctx context.Context, u *domain.User) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *MongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (r *MongoUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

// MongoProducts stores the catalog in the "products" collection.
type MongoProducts struct{ coll *mongo.Collection }

func NewMongoProducts(db *mongo.Database) *MongoProducts {
	return &MongoProducts{coll: db.Collection("products")}
}

var _ ProductRepository = (*MongoProducts)(nil)

func (r *MongoProducts) Create(ctx context.Context, p *domain.Product) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *MongoProducts) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapMongoErr(err)
	}
	return &p, nil
}

func (r *MongoProducts) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProducts) List(ctx context.Context) ([]domain.Product, error) {
	return r.findProducts(ctx, bson.M{})
}

func (r *MongoProducts) ListByCreator(ctx context.Context, adminID primitive.ObjectID) ([]domain.Product, error) {
	return r.findProducts(ctx, bson.M{"createdBy": adminID})
}

func (r *MongoProducts) findProducts(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := make([]domain.Product, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MongoCarts stores per-user carts in the "carts" collection.
type MongoCarts struct{ coll *mongo.Collection }

func NewMongoCarts(db *mongo.Database) *MongoCarts {
	return &MongoCarts{coll: db.Collection("carts")}
}

var _ CartRepository = (*MongoCarts)(nil)

func (r *MongoCarts) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var c domain.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&c); err != nil {
		return nil, mapMongoErr(err)
	}
	return &c, nil
}

func (r *MongoCarts) Upsert(ctx context.Context, c *domain.Cart) error {
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"user": c.UserID}, c, opts)
	return err
}

func (r *MongoCarts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// MongoOrders stores placed orders in the "orders" collection.
type MongoOrders struct{ coll *mongo.Collection }

func NewMongoOrders(db *mongo.Database) *MongoOrders {
	return &MongoOrders{coll: db.Collection("orders")}
}

var _ OrderRepository = (*MongoOrders)(nil)

func (r *MongoOrders) Create(ctx context.Context, o *domain.Order) error {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

func (r *MongoOrders) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var o domain.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, mapMongoErr(err)
	}
	return &o, nil
}

func (r *MongoOrders) GetByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Order, error) {
	var o domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user": userID}).Decode(&o)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &o, nil
}

func (r *MongoOrders) Update(ctx context.Context, o *domain.Order) error {
	o.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrders) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return r.findOrders(ctx, bson.M{"user": userID})
}

func (r *MongoOrders) ListContainingProducts(ctx context.Context, ids []primitive.ObjectID) ([]domain.Order, error) {
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}
	return r.findOrders(ctx, bson.M{"items.productId": bson.M{"$in": ids}})
}

func (r *MongoOrders) findOrders(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := make([]domain.Order, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MongoTx runs fn directly. Stock check and decrement are issued as
// separate writes with no server-side transaction.
type MongoTx struct{}

func NewMongoTx() *MongoTx { return &MongoTx{} }

var _ TxManager = (*MongoTx)(nil)

func (MongoTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
