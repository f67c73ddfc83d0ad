// Package dbschema provides the connection handle the rest of Seshat works
// against. A DatabaseConnection wraps a mongo client plus the target database
// and exposes schema reader/writer implementations bound to it.
package dbschema

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/stokaro/seshat/dbschema/mongodb"
	"github.com/stokaro/seshat/dbschema/types"
)

// DatabaseConnection is an explicit handle to one target database. It replaces
// any notion of a global "current database": everything that reads or mutates
// schema state receives one of these.
type DatabaseConnection struct {
	client *mongo.Client
	db     *mongo.Database
	info   types.DBInfo
	reader types.SchemaReader
	writer types.SchemaWriter
}

// ConnectToDatabase connects to the MongoDB deployment at dbURL and binds the
// handle to dbName. When dbName is empty the database name is taken from the
// URL path. The connection is verified with a ping before being returned.
func ConnectToDatabase(ctx context.Context, dbURL, dbName string) (*DatabaseConnection, error) {
	if dbName == "" {
		dbName = databaseNameFromURL(dbURL)
	}
	if dbName == "" {
		return nil, fmt.Errorf("no database name: pass one explicitly or include it in the connection URL path")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dbURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", redactURL(dbURL), err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping %s: %w", redactURL(dbURL), err)
	}

	db := client.Database(dbName)

	conn := &DatabaseConnection{
		client: client,
		db:     db,
		info: types.DBInfo{
			URL:      redactURL(dbURL),
			Database: dbName,
			Version:  serverVersion(ctx, db),
		},
		reader: mongodb.NewReader(db),
		writer: mongodb.NewWriter(db),
	}
	return conn, nil
}

// Reader returns the schema reader bound to this connection.
func (c *DatabaseConnection) Reader() types.SchemaReader {
	return c.reader
}

// Writer returns the schema writer bound to this connection.
func (c *DatabaseConnection) Writer() types.SchemaWriter {
	return c.writer
}

// Info returns connection metadata.
func (c *DatabaseConnection) Info() types.DBInfo {
	return c.info
}

// Database exposes the underlying driver handle for callers that need raw
// collection access (seeding, integration tests).
func (c *DatabaseConnection) Database() *mongo.Database {
	return c.db
}

// Close disconnects the underlying client.
func (c *DatabaseConnection) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// serverVersion asks the server for its build info. Failures are tolerated;
// the version is informational only.
func serverVersion(ctx context.Context, db *mongo.Database) string {
	var build struct {
		Version string `bson:"version"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&build); err != nil {
		return ""
	}
	return build.Version
}

// databaseNameFromURL extracts the database name from the URL path of a
// mongodb:// or mongodb+srv:// connection string. Returns "" when the URL has
// no path segment or cannot be parsed.
func databaseNameFromURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return ""
	}
	return strings.Trim(parsed.Path, "/")
}

// redactURL strips credentials from a connection URL for logging. Unparseable
// input is returned verbatim.
func redactURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return dbURL
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
		}
	}
	return parsed.String()
}
