package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-extras/cobraflags"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/stokaro/seshat/cmd/dbflags"
	"github.com/stokaro/seshat/dbschema"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo fixtures into a provisioned database",
	Long: `Insert demo users, events, RSVPs and attendees into a provisioned database.

The fixtures honor the declared validators: every generated document carries
the required fields, valid enum values and bcrypt password hashes. Each event
gets RSVPs from a few distinct users; accepted RSVPs are mirrored into the
attendees collection the way the application layer would.

The command refuses to run against a database that already contains users
unless --force is given.

Examples:
  seshat seed                       # 20 users, 5 events
  seshat seed --users 100 --events 25
  seshat seed --force               # Seed on top of existing data`,
	RunE: seedCommand,
}

const (
	usersFlag  = "users"
	eventsFlag = "events"
	forceFlag  = "force"
)

var seedFlags = map[string]cobraflags.Flag{
	usersFlag: &cobraflags.IntFlag{
		Name:  usersFlag,
		Value: 20,
		Usage: "Number of users to create",
	},
	eventsFlag: &cobraflags.IntFlag{
		Name:  eventsFlag,
		Value: 5,
		Usage: "Number of events to create",
	},
	forceFlag: &cobraflags.BoolFlag{
		Name:  forceFlag,
		Value: false,
		Usage: "Seed even if the database already contains users",
	},
}

var connFlags = dbflags.New()

// seedOptions bounds the fixture sizes to something a demo database can hold.
type seedOptions struct {
	Users  int `validate:"min=1,max=10000"`
	Events int `validate:"min=1,max=1000"`
}

func NewSeedCommand() *cobra.Command {
	cobraflags.RegisterMap(seedCmd, connFlags)
	cobraflags.RegisterMap(seedCmd, seedFlags)
	return seedCmd
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := seedOptions{
		Users:  seedFlags[usersFlag].GetInt(),
		Events: seedFlags[eventsFlag].GetInt(),
	}
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("invalid seed options: %w", err)
	}

	conn, err := dbschema.ConnectToDatabase(ctx, dbflags.ResolveURL(connFlags), dbflags.ResolveName(connFlags))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	db := conn.Database()

	if !seedFlags[forceFlag].GetBool() {
		count, err := db.Collection("users").CountDocuments(ctx, bson.D{})
		if err != nil {
			return fmt.Errorf("failed to count existing users: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("database %q already contains %d users; re-run with --force to seed anyway", conn.Info().Database, count)
		}
	}

	users, err := seedUsers(ctx, db, opts.Users)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d users\n", len(users))

	events, err := seedEvents(ctx, db, users, opts.Events)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d events\n", len(events))

	rsvpCount, attendeeCount, err := seedRSVPs(ctx, db, users, events)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d rsvps and %d attendees\n", rsvpCount, attendeeCount)

	return nil
}

type seededUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
}

func seedUsers(ctx context.Context, db *mongo.Database, n int) ([]seededUser, error) {
	// One shared hash keeps seeding fast; these are demo accounts.
	hash, err := bcrypt.GenerateFromPassword([]byte(gofakeit.Password(true, true, true, false, false, 16)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	now := time.Now().UTC()
	users := make([]seededUser, n)
	docs := make([]any, n)
	for i := range n {
		users[i] = seededUser{
			ID:    primitive.NewObjectID(),
			Name:  gofakeit.Name(),
			Email: fmt.Sprintf("%d.%s", i, gofakeit.Email()), // prefix guarantees uniqueness
		}
		docs[i] = bson.M{
			"_id":          users[i].ID,
			"email":        users[i].Email,
			"name":         users[i].Name,
			"passwordHash": string(hash),
			"roles":        []string{"member"},
			"status":       "active",
			"createdAt":    now,
			"updatedAt":    now,
		}
	}

	if _, err := db.Collection("users").InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert users: %w", err)
	}
	return users, nil
}

func seedEvents(ctx context.Context, db *mongo.Database, users []seededUser, n int) ([]primitive.ObjectID, error) {
	now := time.Now().UTC()
	ids := make([]primitive.ObjectID, n)
	docs := make([]any, n)
	for i := range n {
		ids[i] = primitive.NewObjectID()
		start := gofakeit.FutureDate().UTC()
		docs[i] = bson.M{
			"_id":         ids[i],
			"title":       gofakeit.LoremIpsumSentence(4),
			"description": gofakeit.LoremIpsumSentence(15),
			"organizerId": users[rand.IntN(len(users))].ID,
			"location": bson.M{
				"name":    gofakeit.Company(),
				"address": gofakeit.Address().Address,
				"lat":     gofakeit.Latitude(),
				"lng":     gofakeit.Longitude(),
			},
			"startTime":  start,
			"endTime":    start.Add(2 * time.Hour),
			"tags":       []string{gofakeit.Hobby(), gofakeit.Hobby()},
			"visibility": "public",
			"capacity":   rand.IntN(200) + 10,
			"status":     "published",
			"createdAt":  now,
			"updatedAt":  now,
		}
	}

	if _, err := db.Collection("events").InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert events: %w", err)
	}
	return ids, nil
}

func seedRSVPs(ctx context.Context, db *mongo.Database, users []seededUser, events []primitive.ObjectID) (int, int, error) {
	perEvent := min(3, len(users))
	now := time.Now().UTC()

	var rsvps, attendees []any
	for _, eventID := range events {
		// Distinct users per event keep the (eventId, userId) unique indexes happy.
		offset := rand.IntN(len(users))
		for i := range perEvent {
			user := users[(offset+i)%len(users)]
			rsvps = append(rsvps, bson.M{
				"eventId":   eventID,
				"userId":    user.ID,
				"status":    "yes",
				"guests":    rand.IntN(3),
				"createdAt": now,
				"updatedAt": now,
			})
			attendees = append(attendees, bson.M{
				"eventId":        eventID,
				"userId":         user.ID,
				"attendeeStatus": "confirmed",
				"userName":       user.Name,
				"userEmail":      user.Email,
				"createdAt":      now,
				"updatedAt":      now,
			})
		}
	}

	if len(rsvps) == 0 {
		return 0, 0, nil
	}
	if _, err := db.Collection("rsvps").InsertMany(ctx, rsvps); err != nil {
		return 0, 0, fmt.Errorf("failed to insert rsvps: %w", err)
	}
	if _, err := db.Collection("attendees").InsertMany(ctx, attendees); err != nil {
		return len(rsvps), 0, fmt.Errorf("failed to insert attendees: %w", err)
	}
	return len(rsvps), len(attendees), nil
}
