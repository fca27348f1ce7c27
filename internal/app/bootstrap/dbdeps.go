// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/clubhub/internal/app/session"
	"github.com/dalemusser/clubhub/internal/app/store/blob"
	contentstore "github.com/dalemusser/clubhub/internal/app/store/content"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Blobs  blob.Store
	Writer *blob.Writer

	Directory *memberstore.Store
	Content   *contentstore.Store
	Sessions  *session.Manager
}
