//go:build integration
// +build integration

package db

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/roles"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DatabaseIntegrationTestSuite struct {
	suite.Suite
	dataStore *DataStore
	dbType    string
	dsn       string
}

func (s *DatabaseIntegrationTestSuite) SetupTest() {
	//reset to clean state
	switch s.dbType {
	case "sqlite", "":
		//just reopen for :memory:
		dataStore, err := NewSqliteStore(zap.NewNop(), &config.DatabaseConfiguration{
			Type: "sqlite",
			DSN:  s.dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	case "pg":
		s.dataStore.db.MustExec("DROP SCHEMA IF EXISTS public CASCADE;")
		s.dataStore.db.MustExec("CREATE SCHEMA public;")
	case "mysql":
		s.dataStore.db.MustExec("DROP DATABASE IF EXISTS crewline;")
		s.dataStore.db.MustExec("CREATE DATABASE crewline;")
		s.dataStore.db.MustExec("USE crewline;")
	}

	err := s.dataStore.EnsureUsable()
	assert.NoError(s.T(), err)
}

func (s *DatabaseIntegrationTestSuite) mustSeedRestaurant() (int, int) {
	ownerID, err := s.dataStore.InsertUser(
		context.Background(),
		"owner@crewline.local",
		"Owner",
		"hash",
		roles.Owner,
		nil,
	)
	assert.NoError(s.T(), err)
	restaurantID, err := s.dataStore.InsertRestaurant(context.Background(), &tables.RestaurantTable{
		Name:    "Pasta Paradise",
		OwnerID: ownerID,
	})
	assert.NoError(s.T(), err)
	return ownerID, restaurantID
}

// Invites part

func (s *DatabaseIntegrationTestSuite) TestCreateInviteAndLoadByToken() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	email := "newhire@crewline.local"
	expires := time.Now().UTC().Add(72 * time.Hour)
	invite := &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "0f5c3a1d9e8b7a6c5d4e3f2a1b0c9d8e",
		Email:        &email,
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		ExpiresAt:    &expires,
		CreatedAt:    time.Now().UTC(),
	}
	err := s.dataStore.CreateInvite(context.Background(), invite)
	assert.NoError(s.T(), err)

	loaded, err := s.dataStore.InviteByToken(context.Background(), invite.Token)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), loaded) {
		assert.Equal(s.T(), invite.ID, loaded.ID)
		assert.Equal(s.T(), invite.Token, loaded.Token)
		assert.Equal(s.T(), roles.Staff, loaded.Role)
		assert.Equal(s.T(), restaurantID, loaded.RestaurantID)
		assert.Equal(s.T(), ownerID, loaded.CreatedBy)
		assert.False(s.T(), loaded.Used)
		if assert.NotNil(s.T(), loaded.Email) {
			assert.Equal(s.T(), email, *loaded.Email)
		}
	}
}

func (s *DatabaseIntegrationTestSuite) TestInviteByTokenNotFound() {
	_, err := s.dataStore.InviteByToken(context.Background(), "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestInviteTokenExists() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	err := s.dataStore.CreateInvite(context.Background(), &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	})
	assert.NoError(s.T(), err)

	exists, err := s.dataStore.InviteTokenExists(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.dataStore.InviteTokenExists(context.Background(), "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *DatabaseIntegrationTestSuite) TestConsumeInviteOnlyOnce() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	token := "cccccccccccccccccccccccccccccccc"
	err := s.dataStore.CreateInvite(context.Background(), &tables.InviteTable{
		ID:           uuid.New(),
		Token:        token,
		Role:         roles.GeneralManager,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	})
	assert.NoError(s.T(), err)

	won, err := s.dataStore.ConsumeInvite(context.Background(), token)
	assert.NoError(s.T(), err)
	assert.True(s.T(), won)

	// second consumption loses
	won, err = s.dataStore.ConsumeInvite(context.Background(), token)
	assert.NoError(s.T(), err)
	assert.False(s.T(), won)

	loaded, err := s.dataStore.InviteByToken(context.Background(), token)
	assert.NoError(s.T(), err)
	assert.True(s.T(), loaded.Used)
}

func (s *DatabaseIntegrationTestSuite) TestConsumeInviteConcurrently() {
	if s.dbType == "sqlite" || s.dbType == "" {
		// a second pool connection would get its own empty :memory: database
		s.dataStore.db.SetMaxOpenConns(1)
	}
	ownerID, restaurantID := s.mustSeedRestaurant()
	token := "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
	err := s.dataStore.CreateInvite(context.Background(), &tables.InviteTable{
		ID:           uuid.New(),
		Token:        token,
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	})
	assert.NoError(s.T(), err)

	const redeemers = 8
	start := make(chan struct{})
	results := make(chan bool, redeemers)
	var wg sync.WaitGroup
	for i := 0; i < redeemers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			won, err := s.dataStore.ConsumeInvite(context.Background(), token)
			assert.NoError(s.T(), err)
			results <- won
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	winners := 0
	for won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(s.T(), 1, winners)

	loaded, err := s.dataStore.InviteByToken(context.Background(), token)
	assert.NoError(s.T(), err)
	assert.True(s.T(), loaded.Used)
}

func (s *DatabaseIntegrationTestSuite) TestConsumeUnknownInvite() {
	won, err := s.dataStore.ConsumeInvite(context.Background(), "dddddddddddddddddddddddddddddddd")
	assert.NoError(s.T(), err)
	assert.False(s.T(), won)
}

func (s *DatabaseIntegrationTestSuite) TestInvitesByRestaurantNewestFirst() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	first := &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "11111111111111111111111111111111",
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	}
	second := &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "22222222222222222222222222222222",
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	}
	assert.NoError(s.T(), s.dataStore.CreateInvite(context.Background(), first))
	assert.NoError(s.T(), s.dataStore.CreateInvite(context.Background(), second))

	invites, err := s.dataStore.InvitesByRestaurant(context.Background(), restaurantID)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), invites, 2) {
		assert.Equal(s.T(), second.Token, invites[0].Token)
		assert.Equal(s.T(), first.Token, invites[1].Token)
	}

	invites, err = s.dataStore.InvitesByRestaurant(context.Background(), restaurantID+99)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), invites, 0)
}

func (s *DatabaseIntegrationTestSuite) TestExpiredUnusedInviteCount() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	expired := time.Now().UTC().Add(-time.Hour)
	live := time.Now().UTC().Add(time.Hour)
	assert.NoError(s.T(), s.dataStore.CreateInvite(context.Background(), &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "33333333333333333333333333333333",
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		ExpiresAt:    &expired,
		CreatedAt:    time.Now().UTC(),
	}))
	assert.NoError(s.T(), s.dataStore.CreateInvite(context.Background(), &tables.InviteTable{
		ID:           uuid.New(),
		Token:        "44444444444444444444444444444444",
		Role:         roles.Staff,
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
		ExpiresAt:    &live,
		CreatedAt:    time.Now().UTC(),
	}))

	count, err := s.dataStore.ExpiredUnusedInviteCount(context.Background(), restaurantID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 1, count)
}

// Users part

func (s *DatabaseIntegrationTestSuite) TestInsertUserAndLoad() {
	id, err := s.dataStore.InsertUser(
		context.Background(),
		"jane@crewline.local",
		"Jane",
		"hash",
		roles.Staff,
		nil,
	)
	assert.NoError(s.T(), err)
	assert.Greater(s.T(), id, 0)

	user, err := s.dataStore.User(context.Background(), id)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), user) {
		assert.Equal(s.T(), "jane@crewline.local", user.Email)
		assert.Equal(s.T(), "Jane", user.Username)
		assert.Equal(s.T(), roles.Staff, user.Role)
		assert.Nil(s.T(), user.RestaurantID)
	}

	user, err = s.dataStore.UserByEmail(context.Background(), "jane@crewline.local")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), id, user.ID)
}

func (s *DatabaseIntegrationTestSuite) TestInsertUserDuplicateEmail() {
	_, err := s.dataStore.InsertUser(
		context.Background(),
		"dup@crewline.local",
		"First",
		"hash",
		roles.Staff,
		nil,
	)
	assert.NoError(s.T(), err)
	_, err = s.dataStore.InsertUser(
		context.Background(),
		"dup@crewline.local",
		"Second",
		"hash",
		roles.Staff,
		nil,
	)
	assert.ErrorIs(s.T(), err, ErrAlreadyExists)
}

func (s *DatabaseIntegrationTestSuite) TestUserByEmailNotFound() {
	_, err := s.dataStore.UserByEmail(context.Background(), "nope@crewline.local")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestIsRegistered() {
	registered, err := s.dataStore.IsRegistered(context.Background(), "ghost@crewline.local")
	assert.NoError(s.T(), err)
	assert.False(s.T(), registered)

	_, err = s.dataStore.InsertUser(
		context.Background(),
		"ghost@crewline.local",
		"Ghost",
		"hash",
		roles.Staff,
		nil,
	)
	assert.NoError(s.T(), err)

	registered, err = s.dataStore.IsRegistered(context.Background(), "ghost@crewline.local")
	assert.NoError(s.T(), err)
	assert.True(s.T(), registered)
}

func (s *DatabaseIntegrationTestSuite) TestUpdateUser() {
	id, err := s.dataStore.InsertUser(
		context.Background(),
		"update@crewline.local",
		"Before",
		"hash",
		roles.Staff,
		nil,
	)
	assert.NoError(s.T(), err)

	username := "After"
	role := roles.GeneralManager
	updated, err := s.dataStore.UpdateUser(context.Background(), id, UserUpdate{
		Username: &username,
		Role:     &role,
	})
	assert.NoError(s.T(), err)
	assert.True(s.T(), updated)

	user, err := s.dataStore.User(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "After", user.Username)
	assert.Equal(s.T(), roles.GeneralManager, user.Role)
	// email untouched
	assert.Equal(s.T(), "update@crewline.local", user.Email)
}

func (s *DatabaseIntegrationTestSuite) TestDeleteUser() {
	id, err := s.dataStore.InsertUser(
		context.Background(),
		"gone@crewline.local",
		"Gone",
		"hash",
		roles.Staff,
		nil,
	)
	assert.NoError(s.T(), err)

	deleted, err := s.dataStore.DeleteUser(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	_, err = s.dataStore.User(context.Background(), id)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	deleted, err = s.dataStore.DeleteUser(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.False(s.T(), deleted)
}

func (s *DatabaseIntegrationTestSuite) TestUsersByRestaurant() {
	_, restaurantID := s.mustSeedRestaurant()
	_, err := s.dataStore.InsertUser(
		context.Background(),
		"staff@crewline.local",
		"Staff",
		"hash",
		roles.Staff,
		&restaurantID,
	)
	assert.NoError(s.T(), err)

	users, err := s.dataStore.UsersByRestaurant(context.Background(), restaurantID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), users, 1)
}

// Tasks part

func (s *DatabaseIntegrationTestSuite) TestTaskLifecycle() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	id, err := s.dataStore.InsertTask(context.Background(), &tables.TaskTable{
		Title:        "Inventory check",
		Priority:     "medium",
		Status:       "pending",
		RestaurantID: restaurantID,
		CreatedBy:    ownerID,
	})
	assert.NoError(s.T(), err)

	status := "completed"
	updated, err := s.dataStore.UpdateTask(context.Background(), id, TaskUpdate{Status: &status})
	assert.NoError(s.T(), err)
	assert.True(s.T(), updated)

	task, err := s.dataStore.Task(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "completed", task.Status)

	deleted, err := s.dataStore.DeleteTask(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)
	_, err = s.dataStore.Task(context.Background(), id)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// Activity log part

func (s *DatabaseIntegrationTestSuite) TestAuditorWritesActivityLog() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	auditor := s.dataStore.Auditor()
	err := auditor.addToActivityLog("invite_created", ownerID, restaurantID, nil, nil,
		tables.MapStructure{"role": roles.Staff})
	assert.NoError(s.T(), err)

	logs, err := s.dataStore.LogsByRestaurant(context.Background(), restaurantID, 0)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), logs, 1) {
		assert.Equal(s.T(), "invite_created", logs[0].EventType)
		assert.Equal(s.T(), ownerID, logs[0].UserID)
		assert.Contains(s.T(), logs[0].Details, "role")
	}
}

func (s *DatabaseIntegrationTestSuite) TestLogsByRestaurantLimit() {
	ownerID, restaurantID := s.mustSeedRestaurant()
	auditor := s.dataStore.Auditor()
	for i := 0; i < 5; i++ {
		err := auditor.addToActivityLog("task_created", ownerID, restaurantID, nil, nil, nil)
		assert.NoError(s.T(), err)
	}

	logs, err := s.dataStore.LogsByRestaurant(context.Background(), restaurantID, 3)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), logs, 3)
}

// Seed part

func (s *DatabaseIntegrationTestSuite) TestSeedDemoDataOnlyOnce() {
	err := s.dataStore.SeedDemoData(context.Background())
	assert.NoError(s.T(), err)

	admin, err := s.dataStore.UserByEmail(context.Background(), "admin@dishwasher.guide")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), roles.SuperAdmin, admin.Role)

	// second run must not duplicate anything
	err = s.dataStore.SeedDemoData(context.Background())
	assert.NoError(s.T(), err)

	users, err := s.dataStore.Users(context.Background())
	assert.NoError(s.T(), err)
	assert.Len(s.T(), users, 2)
}

func TestDatabaseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database integration tests")
	}
	s := &DatabaseIntegrationTestSuite{}
	logger := zaptest.NewLogger(t)
	dbType := os.Getenv("INTEGRATION_TEST_DB_TYPE")
	dsn := os.Getenv("INTEGRATION_TEST_DB_DSN")
	if dbType == "" {
		dbType = "sqlite"
		dsn = ":memory:"
	}
	dataStore, err := NewStore(logger, &config.DatabaseConfiguration{
		Type: dbType,
		DSN:  dsn,
	})
	if err != nil {
		log.Fatal("error creating database store")
	}
	s.dataStore = dataStore
	s.dbType = dbType
	s.dsn = dsn
	suite.Run(t, s)
}
