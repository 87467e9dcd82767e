// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the database handles built once in ConnectDB and passed to
// every later hook. There is no package-level client.
type DBDeps struct {
	HuddleMongoClient   *mongo.Client
	HuddleMongoDatabase *mongo.Database
}
