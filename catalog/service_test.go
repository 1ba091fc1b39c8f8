package catalog

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

	"portfolio-backend/auth"
	"portfolio-backend/database"
	"portfolio-backend/errs"
	"portfolio-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedUser(t *testing.T, db database.Database, username string) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         auth.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.UserRepo().Add(&user))
	return user
}

// newTestService wires a service against in-memory sqlite with a ticking
// clock so every write gets a distinct timestamp.
func newTestService(t *testing.T) (*Service, database.Database, auth.Principal) {
	t.Helper()

	db := database.New(newTestDB(t))
	user := seedUser(t, db, "admin")

	svc := NewService(db)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	principal := auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
	return svc, db, principal
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func basicInput(title string) ProjectInput {
	return ProjectInput{
		Title:     title,
		Content:   "Long-form write-up for " + title,
		Published: true,
	}
}

func TestCreateResolvesSlugAndDisambiguates(t *testing.T) {
	svc, _, principal := newTestService(t)

	first, err := svc.Create(principal, basicInput("My New Site!"))
	require.NoError(t, err)
	assert.Equal(t, "my-new-site", first.Slug)

	second, err := svc.Create(principal, basicInput("My New Site!"))
	require.NoError(t, err)
	assert.Equal(t, "my-new-site-2", second.Slug)

	third, err := svc.Create(principal, basicInput("My New Site!"))
	require.NoError(t, err)
	assert.Equal(t, "my-new-site-3", third.Slug)
}

func TestCreateRejectsUnslugifiableTitle(t *testing.T) {
	svc, _, principal := newTestService(t)

	_, err := svc.Create(principal, basicInput("!!!"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTitle)
}

func TestCreateRequiresWriteRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(auth.Anonymous, basicInput("Anything"))
	assert.True(t, errs.IsUnauthorized(err))

	viewer := auth.Principal{UserID: uuid.New(), Username: "viewer", Role: "ROLE_VIEWER"}
	_, err = svc.Create(viewer, basicInput("Anything"))
	assert.True(t, errs.IsForbidden(err))
}

func TestCreateValidation(t *testing.T) {
	svc, _, principal := newTestService(t)

	_, err := svc.Create(principal, ProjectInput{Content: "content"})
	require.Error(t, err)

	_, err = svc.Create(principal, ProjectInput{Title: "title"})
	require.Error(t, err)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(principal, basicInput(string(long)))
	require.Error(t, err)
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _, principal := newTestService(t)

	input := ProjectInput{
		Title:       "Professional Portfolio Website",
		Description: strPtr("A personal portfolio"),
		Content:     "Full case-study content",
		Thumbnail:   strPtr("https://example.com/thumb.png"),
		GithubURL:   strPtr("https://github.com/sample/project"),
		LiveURL:     strPtr("https://sample-project.com"),
		Featured:    true,
		Published:   true,
		Technologies: []TechnologyInput{
			{Name: "Go", Icon: strPtr("go")},
			{Name: "React"},
		},
		Tags: []TagInput{{Name: "Web Development"}, {Name: "Backend"}},
		Videos: []VideoInput{
			{Title: strPtr("Demo"), URL: "https://example.com/demo.mp4"},
		},
		Images: []ImageInput{
			{URL: "https://example.com/1.png", AltText: strPtr("screenshot")},
		},
	}

	created, err := svc.Create(principal, input)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetBySlug(created.Slug)
	require.NoError(t, err)

	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Description, got.Description)
	assert.Equal(t, input.Content, got.Content)
	assert.Equal(t, input.Thumbnail, got.Thumbnail)
	assert.Equal(t, input.GithubURL, got.GithubURL)
	assert.Equal(t, input.LiveURL, got.LiveURL)
	assert.True(t, got.Featured)
	assert.True(t, got.Published)
	assert.Equal(t, principal.UserID, got.UserID)
	assert.Equal(t, "admin", got.Username)

	require.Len(t, got.Technologies, 2)
	names := []string{got.Technologies[0].Name, got.Technologies[1].Name}
	assert.ElementsMatch(t, []string{"Go", "React"}, names)

	require.Len(t, got.Tags, 2)
	require.Len(t, got.Videos, 1)
	assert.Equal(t, "https://example.com/demo.mp4", got.Videos[0].URL)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "https://example.com/1.png", got.Images[0].URL)
}

func TestCreateReusesExistingTechnologiesByName(t *testing.T) {
	svc, db, principal := newTestService(t)

	input := basicInput("First")
	input.Technologies = []TechnologyInput{{Name: "Go"}}
	first, err := svc.Create(principal, input)
	require.NoError(t, err)

	input2 := basicInput("Second")
	input2.Technologies = []TechnologyInput{{Name: "Go"}}
	second, err := svc.Create(principal, input2)
	require.NoError(t, err)

	assert.Equal(t, first.Technologies[0].ID, second.Technologies[0].ID)

	all, err := db.TechnologyRepo().FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVideoOrderIndexAssignment(t *testing.T) {
	svc, _, principal := newTestService(t)

	input := basicInput("Ordered Media")
	input.Videos = []VideoInput{
		{URL: "https://example.com/a.mp4"},
		{URL: "https://example.com/b.mp4", OrderIndex: intPtr(10)},
		{URL: "https://example.com/c.mp4"},
	}

	created, err := svc.Create(principal, input)
	require.NoError(t, err)
	require.Len(t, created.Videos, 3)

	// explicit index respected on create, others follow input position
	assert.Equal(t, "https://example.com/a.mp4", created.Videos[0].URL)
	assert.Equal(t, 0, created.Videos[0].OrderIndex)
	assert.Equal(t, "https://example.com/c.mp4", created.Videos[1].URL)
	assert.Equal(t, 2, created.Videos[1].OrderIndex)
	assert.Equal(t, "https://example.com/b.mp4", created.Videos[2].URL)
	assert.Equal(t, 10, created.Videos[2].OrderIndex)
}

func TestUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	svc, _, principal := newTestService(t)

	created, err := svc.Create(principal, basicInput("Stable Title"))
	require.NoError(t, err)

	input := basicInput("Stable Title")
	input.Content = "rewritten content"
	updated, err := svc.Update(created.ID, principal, input)
	require.NoError(t, err)

	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, "rewritten content", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateReslugsOnTitleChangeExcludingSelf(t *testing.T) {
	svc, _, principal := newTestService(t)

	created, err := svc.Create(principal, basicInput("Original Title"))
	require.NoError(t, err)

	// retitling and then back must not collide with the project's own slug
	input := basicInput("Renamed Title")
	renamed, err := svc.Update(created.ID, principal, input)
	require.NoError(t, err)
	assert.Equal(t, "renamed-title", renamed.Slug)

	back, err := svc.Update(created.ID, principal, basicInput("Original Title"))
	require.NoError(t, err)
	assert.Equal(t, "original-title", back.Slug)
}

func TestUpdateReplacesAssociationSetsWholesale(t *testing.T) {
	svc, db, principal := newTestService(t)

	input := basicInput("Tech Swap")
	input.Technologies = []TechnologyInput{{Name: "Java"}, {Name: "React"}}
	created, err := svc.Create(principal, input)
	require.NoError(t, err)
	require.Len(t, created.Technologies, 2)

	replacement := basicInput("Tech Swap")
	replacement.Technologies = []TechnologyInput{{Name: "Go"}}
	updated, err := svc.Update(created.ID, principal, replacement)
	require.NoError(t, err)

	require.Len(t, updated.Technologies, 1)
	assert.Equal(t, "Go", updated.Technologies[0].Name)

	// Java and React rows survive for other projects to reference
	java, err := db.TechnologyRepo().FindByName("Java")
	require.NoError(t, err)
	assert.NotNil(t, java)
	react, err := db.TechnologyRepo().FindByName("React")
	require.NoError(t, err)
	assert.NotNil(t, react)
}

func TestUpdateRenumbersOwnedCollections(t *testing.T) {
	svc, _, principal := newTestService(t)

	input := basicInput("Renumber")
	input.Images = []ImageInput{
		{URL: "https://example.com/old.png", OrderIndex: intPtr(7)},
	}
	created, err := svc.Create(principal, input)
	require.NoError(t, err)

	replacement := basicInput("Renumber")
	replacement.Images = []ImageInput{
		{URL: "https://example.com/second.png", OrderIndex: intPtr(99)},
		{URL: "https://example.com/first.png", OrderIndex: intPtr(42)},
	}
	updated, err := svc.Update(created.ID, principal, replacement)
	require.NoError(t, err)

	// update renumbers by input sequence, explicit indexes ignored
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "https://example.com/second.png", updated.Images[0].URL)
	assert.Equal(t, 0, updated.Images[0].OrderIndex)
	assert.Equal(t, "https://example.com/first.png", updated.Images[1].URL)
	assert.Equal(t, 1, updated.Images[1].OrderIndex)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, principal := newTestService(t)

	_, err := svc.Update(uuid.New(), principal, basicInput("Ghost"))
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteCascadesOwnedRowsOnly(t *testing.T) {
	svc, db, principal := newTestService(t)

	input := basicInput("Doomed")
	input.Technologies = []TechnologyInput{{Name: "Go"}}
	input.Videos = []VideoInput{{URL: "https://example.com/v.mp4"}}
	input.Images = []ImageInput{{URL: "https://example.com/i.png"}}
	created, err := svc.Create(principal, input)
	require.NoError(t, err)

	keeper := basicInput("Keeper")
	keeper.Technologies = []TechnologyInput{{Name: "Go"}}
	kept, err := svc.Create(principal, keeper)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID, principal))

	_, err = svc.GetBySlug(created.Slug)
	assert.True(t, errs.IsNotFound(err))

	gormDB := db.ProjectRepo().GetDB()
	var videoCount, imageCount int64
	require.NoError(t, gormDB.Model(&models.Video{}).Where("project_id = ?", created.ID).Count(&videoCount).Error)
	require.NoError(t, gormDB.Model(&models.ProjectImage{}).Where("project_id = ?", created.ID).Count(&imageCount).Error)
	assert.Zero(t, videoCount)
	assert.Zero(t, imageCount)

	// shared technology row survives and is still attached to the keeper
	goTech, err := db.TechnologyRepo().FindByName("Go")
	require.NoError(t, err)
	require.NotNil(t, goTech)

	keptView, err := svc.GetBySlug(kept.Slug)
	require.NoError(t, err)
	require.Len(t, keptView.Technologies, 1)
	assert.Equal(t, goTech.ID, keptView.Technologies[0].ID)
}

func TestDeleteNotFoundIsAnError(t *testing.T) {
	svc, _, principal := newTestService(t)

	err := svc.Delete(uuid.New(), principal)
	assert.True(t, errs.IsNotFound(err))
}

func TestListPaginationBeyondEnd(t *testing.T) {
	svc, _, principal := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(principal, basicInput(fmt.Sprintf("Published %d", i)))
		require.NoError(t, err)
	}
	draft := basicInput("Draft")
	draft.Published = false
	_, err := svc.Create(principal, draft)
	require.NoError(t, err)

	page, err := svc.List(5, 10, true)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 5, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestListOrderingNewestFirst(t *testing.T) {
	svc, _, principal := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(principal, basicInput(fmt.Sprintf("Project %d", i)))
		require.NoError(t, err)
	}

	page, err := svc.List(0, 10, true)
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "Project 2", page.Content[0].Title)
	assert.Equal(t, "Project 1", page.Content[1].Title)
	assert.Equal(t, "Project 0", page.Content[2].Title)
}

func TestListValidatesPaging(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(-1, 10, true)
	require.Error(t, err)

	_, err = svc.List(0, 0, true)
	require.Error(t, err)
}

func TestListFeatured(t *testing.T) {
	svc, _, principal := newTestService(t)

	featured := basicInput("Shiny")
	featured.Featured = true
	_, err := svc.Create(principal, featured)
	require.NoError(t, err)

	plain := basicInput("Plain")
	_, err = svc.Create(principal, plain)
	require.NoError(t, err)

	hiddenGem := basicInput("Hidden Gem")
	hiddenGem.Featured = true
	hiddenGem.Published = false
	_, err = svc.Create(principal, hiddenGem)
	require.NoError(t, err)

	views, err := svc.ListFeatured()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Shiny", views[0].Title)
}

func TestSearchMatchesPublishedOnly(t *testing.T) {
	svc, _, principal := newTestService(t)

	inTitle := basicInput("My Portfolio Site")
	_, err := svc.Create(principal, inTitle)
	require.NoError(t, err)

	inDescription := basicInput("Side Project")
	inDescription.Description = strPtr("A PORTFOLIO of experiments")
	_, err = svc.Create(principal, inDescription)
	require.NoError(t, err)

	inContent := basicInput("Notes")
	inContent.Content = "this portfolio entry covers everything"
	_, err = svc.Create(principal, inContent)
	require.NoError(t, err)

	unpublished := basicInput("Secret Portfolio Draft")
	unpublished.Published = false
	_, err = svc.Create(principal, unpublished)
	require.NoError(t, err)

	unrelated := basicInput("Cooking Blog")
	unrelated.Content = "recipes only"
	_, err = svc.Create(principal, unrelated)
	require.NoError(t, err)

	page, err := svc.Search("portfolio", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	require.Len(t, page.Content, 3)
	for _, view := range page.Content {
		assert.True(t, view.Published)
		assert.NotEqual(t, "Secret Portfolio Draft", view.Title)
	}
}

func TestSearchRejectsBlankKeyword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Search("   ", 0, 10)
	require.Error(t, err)
}

func TestListByUserIncludesDraftsForOwnerOnly(t *testing.T) {
	svc, db, principal := newTestService(t)

	draft := basicInput("Work In Progress")
	draft.Published = false
	_, err := svc.Create(principal, draft)
	require.NoError(t, err)

	page, err := svc.ListByUser(principal, principal.UserID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	other := seedUser(t, db, "other")
	stranger := auth.Principal{UserID: other.ID, Username: other.Username, Role: auth.RoleUser}
	_, err = svc.ListByUser(stranger, principal.UserID, 0, 10)
	assert.True(t, errs.IsForbidden(err))

	admin := auth.Principal{UserID: other.ID, Username: other.Username, Role: auth.RoleAdmin}
	page, err = svc.ListByUser(admin, principal.UserID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestGetBySlugNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetBySlug("missing")
	assert.True(t, errs.IsNotFound(err))
}
