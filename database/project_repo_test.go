package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio-backend/models"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// in-memory sqlite is per-connection; keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return New(db)
}

func seedTestUser(t *testing.T, db Database) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Username:     "author",
		Email:        "author@example.com",
		PasswordHash: "x",
		Role:         "ROLE_USER",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.UserRepo().Add(&user))
	return user
}

func seedProject(t *testing.T, db Database, userID uuid.UUID, title, slug string, published bool, createdAt time.Time) models.Project {
	t.Helper()

	project := models.Project{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   "content for " + title,
		Published: published,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		UserID:    userID,
	}
	require.NoError(t, db.ProjectRepo().Add(&project))
	return project
}

func TestFindBySlugLoadsRelationGraph(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	project := seedProject(t, db, user.ID, "Graph", "graph", true, time.Now().UTC())

	tech, err := db.TechnologyRepo().FindOrCreate("Go", nil)
	require.NoError(t, err)
	require.NoError(t, db.ProjectRepo().ReplaceTechnologies(project.ID, []uuid.UUID{tech.ID}))

	now := time.Now().UTC()
	videos := []models.Video{
		{ID: uuid.New(), URL: "https://example.com/b.mp4", OrderIndex: 1, ProjectID: project.ID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), URL: "https://example.com/a.mp4", OrderIndex: 0, ProjectID: project.ID, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.ProjectRepo().ReplaceVideos(project.ID, videos))

	got, err := db.ProjectRepo().FindBySlug("graph")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "author", got.User.Username)
	require.Len(t, got.Technologies, 1)
	assert.Equal(t, "Go", got.Technologies[0].Name)

	// owned media comes back in display order
	require.Len(t, got.Videos, 2)
	assert.Equal(t, "https://example.com/a.mp4", got.Videos[0].URL)
	assert.Equal(t, "https://example.com/b.mp4", got.Videos[1].URL)
}

func TestFindBySlugMissingIsNilNil(t *testing.T) {
	db := newTestDatabase(t)

	got, err := db.ProjectRepo().FindBySlug("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSlugExistsExcludesGivenProject(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	project := seedProject(t, db, user.ID, "Self", "self", true, time.Now().UTC())

	exists, err := db.ProjectRepo().SlugExists("self", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.ProjectRepo().SlugExists("self", project.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListPublishedOrderingAndPaging(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedProject(t, db, user.ID, fmt.Sprintf("P%d", i), fmt.Sprintf("p%d", i), true, base.Add(time.Duration(i)*time.Minute))
	}
	seedProject(t, db, user.ID, "Draft", "draft", false, base.Add(time.Hour))

	page, err := db.ProjectRepo().ListPublished(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalElements)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "P4", page.Content[0].Title)
	assert.Equal(t, "P3", page.Content[1].Title)

	page, err = db.ProjectRepo().ListPublished(2, 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "P0", page.Content[0].Title)

	page, err = db.ProjectRepo().ListPublished(3, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(5), page.TotalElements)
}

func TestSearchFansOutAcrossTextFields(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	now := time.Now().UTC()

	seedProject(t, db, user.ID, "Widget Factory", "widget-factory", true, now)

	desc := "builds WIDGET prototypes"
	inDesc := models.Project{
		ID: uuid.New(), Title: "Side Hustle", Slug: "side-hustle",
		Description: &desc, Content: "nothing relevant",
		Published: true, CreatedAt: now, UpdatedAt: now, UserID: user.ID,
	}
	require.NoError(t, db.ProjectRepo().Add(&inDesc))

	inContent := models.Project{
		ID: uuid.New(), Title: "Essays", Slug: "essays",
		Content: "a widget retrospective", Published: true,
		CreatedAt: now, UpdatedAt: now, UserID: user.ID,
	}
	require.NoError(t, db.ProjectRepo().Add(&inContent))

	seedProject(t, db, user.ID, "Secret Widget", "secret-widget", false, now)

	page, err := db.ProjectRepo().Search("widget", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	for _, project := range page.Content {
		assert.True(t, project.Published)
	}
}

func TestListByUserIncludesDrafts(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	now := time.Now().UTC()

	seedProject(t, db, user.ID, "Live", "live", true, now)
	seedProject(t, db, user.ID, "WIP", "wip", false, now.Add(time.Second))

	other := models.User{ID: uuid.New(), Username: "other", Email: "other@example.com", PasswordHash: "x", Role: "ROLE_USER", CreatedAt: now}
	require.NoError(t, db.UserRepo().Add(&other))
	seedProject(t, db, other.ID, "Theirs", "theirs", true, now)

	page, err := db.ProjectRepo().ListByUser(user.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "WIP", page.Content[0].Title)
	assert.Equal(t, "Live", page.Content[1].Title)
}

func TestReplaceTechnologiesReconcilesDiff(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	project := seedProject(t, db, user.ID, "Diff", "diff", true, time.Now().UTC())

	java, err := db.TechnologyRepo().FindOrCreate("Java", nil)
	require.NoError(t, err)
	react, err := db.TechnologyRepo().FindOrCreate("React", nil)
	require.NoError(t, err)
	goTech, err := db.TechnologyRepo().FindOrCreate("Go", nil)
	require.NoError(t, err)

	require.NoError(t, db.ProjectRepo().ReplaceTechnologies(project.ID, []uuid.UUID{java.ID, react.ID}))
	require.NoError(t, db.ProjectRepo().ReplaceTechnologies(project.ID, []uuid.UUID{react.ID, goTech.ID}))

	got, err := db.ProjectRepo().FindBySlug("diff")
	require.NoError(t, err)
	require.Len(t, got.Technologies, 2)
	names := []string{got.Technologies[0].Name, got.Technologies[1].Name}
	assert.ElementsMatch(t, []string{"React", "Go"}, names)

	// the detached technology row itself is untouched
	stillThere, err := db.TechnologyRepo().FindByName("Java")
	require.NoError(t, err)
	assert.NotNil(t, stillThere)
}

func TestDeleteRemovesOwnedAndJoinRows(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	project := seedProject(t, db, user.ID, "Gone", "gone", true, time.Now().UTC())

	tech, err := db.TechnologyRepo().FindOrCreate("Go", nil)
	require.NoError(t, err)
	require.NoError(t, db.ProjectRepo().ReplaceTechnologies(project.ID, []uuid.UUID{tech.ID}))

	now := time.Now().UTC()
	require.NoError(t, db.ProjectRepo().ReplaceVideos(project.ID, []models.Video{
		{ID: uuid.New(), URL: "https://example.com/v.mp4", ProjectID: project.ID, CreatedAt: now, UpdatedAt: now},
	}))

	require.NoError(t, db.ProjectRepo().Delete(project.ID))

	got, err := db.ProjectRepo().FindBySlug("gone")
	require.NoError(t, err)
	assert.Nil(t, got)

	var joinCount, videoCount int64
	require.NoError(t, db.ProjectRepo().GetDB().Model(&models.ProjectTechnology{}).Where("project_id = ?", project.ID).Count(&joinCount).Error)
	require.NoError(t, db.ProjectRepo().GetDB().Model(&models.Video{}).Where("project_id = ?", project.ID).Count(&videoCount).Error)
	assert.Zero(t, joinCount)
	assert.Zero(t, videoCount)
}

func TestAddDuplicateSlugFailsOnUniqueIndex(t *testing.T) {
	db := newTestDatabase(t)
	user := seedTestUser(t, db)
	seedProject(t, db, user.ID, "One", "clash", true, time.Now().UTC())

	dup := models.Project{
		ID: uuid.New(), Title: "Two", Slug: "clash", Content: "c",
		Published: true, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(), UserID: user.ID,
	}
	err := db.ProjectRepo().Add(&dup)
	require.Error(t, err)
}
