package actions

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subfolio-dev/subfolio/db"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordedRevalidation struct {
	subdomainID string
	paths       []string
}

type recordingRevalidator struct {
	mu    sync.Mutex
	calls []recordedRevalidation
}

func (r *recordingRevalidator) Revalidate(subdomainID string, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedRevalidation{subdomainID: subdomainID, paths: paths})
}

func (r *recordingRevalidator) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		out = append(out, c.paths...)
	}
	return out
}

type fixture struct {
	db    *gorm.DB
	acts  *Actions
	reval *recordingRevalidator

	owner    *types.AuthenticatedUser
	stranger *types.AuthenticatedUser
	site     models.Subdomain
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	owner := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	stranger := models.User{Name: "Eve", Email: "eve@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&owner).Error)
	require.NoError(t, conn.Create(&stranger).Error)

	site := models.Subdomain{Name: "ada", UserID: owner.ID}
	require.NoError(t, conn.Create(&site).Error)

	reval := &recordingRevalidator{}
	acts := New(conn, Options{
		Revalidator: reval,
		SiteURL:     func(name string) string { return "http://" + name + ".localhost:3000" },
		Logger:      zap.NewNop(),
	})

	return &fixture{
		db:       conn,
		acts:     acts,
		reval:    reval,
		owner:    &types.AuthenticatedUser{ID: owner.ID, Name: owner.Name, Email: owner.Email},
		stranger: &types.AuthenticatedUser{ID: stranger.ID, Name: stranger.Name, Email: stranger.Email},
		site:     site,
	}
}

func validProfile() types.ProfileForm {
	return types.ProfileForm{
		Name:         "Ada Lovelace",
		Initials:     "AL",
		URL:          "https://ada.dev",
		Location:     "London",
		LocationLink: "https://maps.example.com/london",
		Description:  "Analyst of engines and numbers.",
		Summary:      "I write **programs** for machines that do not exist yet.",
		Avatar:       "https://ada.dev/avatar.png",
		Skills:       []string{"Math", "Poetry"},
	}
}

func validWork() types.WorkForm {
	return types.WorkForm{
		Company:     "Analytical Engines",
		Href:        "https://engines.example.com",
		Badges:      []string{"Remote"},
		Location:    "London",
		Title:       "Programmer",
		Start:       "1842",
		Description: "Notes on the engine.",
	}
}

func validProject() types.ProjectForm {
	return types.ProjectForm{
		Title:        "Bernoulli numbers",
		Href:         "https://ada.dev/bernoulli",
		Dates:        "1842 - 1843",
		Active:       true,
		Description:  "First published algorithm.",
		Technologies: []string{"Punch cards"},
		Links: []types.LinkForm{
			{Type: "Website", Href: "https://ada.dev/bernoulli"},
			{Type: "Source", Href: "https://github.com/ada/bernoulli"},
		},
	}
}

func (f *fixture) withProfile(t *testing.T) string {
	t.Helper()
	res := f.acts.UpdateProfile(context.Background(), f.owner, f.site.ID, validProfile())
	require.True(t, res.OK(), res.Error)
	return res.ID
}

func TestUpdateProfileCreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.acts.UpdateProfile(ctx, f.owner, f.site.ID, validProfile())
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Profile created!", res.Success)
	assert.Empty(t, res.Error)

	values := validProfile()
	values.Name = "Augusta Ada King"
	res = f.acts.UpdateProfile(ctx, f.owner, f.site.ID, values)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Profile updated!", res.Success)

	var profiles []models.Profile
	require.NoError(t, f.db.Where("subdomain_id = ?", f.site.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Augusta Ada King", profiles[0].Name)
	assert.Equal(t, []string{"Math", "Poetry"}, []string(profiles[0].Skills))

	assert.Contains(t, f.reval.paths(), "/dashboard/"+f.site.ID+"/profile")
	assert.Contains(t, f.reval.paths(), "/s/ada")
}

func TestMutatorsRequireActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	results := []Result{
		f.acts.UpdateProfile(ctx, nil, f.site.ID, validProfile()),
		f.acts.CreateWork(ctx, nil, f.site.ID, "", validWork()),
		f.acts.DeleteProject(ctx, nil, f.site.ID, "p"),
		f.acts.UpdateContact(ctx, nil, f.site.ID, "", types.ContactForm{}),
		f.acts.CreateSubdomain(ctx, nil, types.SubdomainForm{Name: "new"}),
		f.acts.DeleteSubdomain(ctx, nil, "ada"),
	}

	for _, res := range results {
		assert.Equal(t, "Unauthorized", res.Error)
		assert.Equal(t, KindUnauthorized, res.Kind)
		assert.Empty(t, res.Success)
	}
	assert.Empty(t, f.reval.paths())
}

func TestForeignSubdomainLooksMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.withProfile(t)

	res := f.acts.UpdateProfile(ctx, f.stranger, f.site.ID, validProfile())
	assert.Equal(t, "Subdomain not found", res.Error)
	assert.Equal(t, KindNotFound, res.Kind)

	missing := f.acts.UpdateProfile(ctx, f.owner, "does-not-exist", validProfile())
	assert.Equal(t, res.Error, missing.Error)
	assert.Equal(t, res.Kind, missing.Kind)
}

func TestInvalidInputWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	values := validProfile()
	values.Name = "A"
	values.Avatar = "not a url"

	res := f.acts.UpdateProfile(ctx, f.owner, f.site.ID, values)
	assert.Equal(t, "Invalid fields!", res.Error)
	assert.Equal(t, KindInvalidInput, res.Kind)
	assert.Contains(t, res.Fields, "name")
	assert.Contains(t, res.Fields, "avatar")

	var count int64
	require.NoError(t, f.db.Model(&models.Profile{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.reval.paths())
}

func TestWorkLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profileID := f.withProfile(t)

	res := f.acts.CreateWork(ctx, f.owner, f.site.ID, profileID, validWork())
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Work experience added!", res.Success)
	workID := res.ID

	end := "1843"
	values := validWork()
	values.End = &end
	res = f.acts.UpdateWork(ctx, f.owner, f.site.ID, workID, values)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Work experience updated!", res.Success)

	works, err := data.ListWorks(ctx, f.db, profileID)
	require.NoError(t, err)
	require.Len(t, works, 1)
	require.NotNil(t, works[0].End)
	assert.Equal(t, "1843", *works[0].End)

	res = f.acts.DeleteWork(ctx, f.owner, f.site.ID, workID)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Work experience deleted!", res.Success)

	res = f.acts.DeleteWork(ctx, f.owner, f.site.ID, workID)
	assert.Equal(t, "Work experience not found", res.Error)
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestCreateWorkRequiresMatchingProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.acts.CreateWork(ctx, f.owner, f.site.ID, "", validWork())
	assert.Equal(t, "Profile not found", res.Error)

	f.withProfile(t)
	res = f.acts.CreateWork(ctx, f.owner, f.site.ID, "someone-elses-profile", validWork())
	assert.Equal(t, "Profile not found", res.Error)
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestChildOfOtherTenantIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profileID := f.withProfile(t)

	res := f.acts.CreateWork(ctx, f.owner, f.site.ID, profileID, validWork())
	require.True(t, res.OK(), res.Error)
	workID := res.ID

	other := models.Subdomain{Name: "eve", UserID: f.stranger.ID}
	require.NoError(t, f.db.Create(&other).Error)
	created := f.acts.UpdateProfile(ctx, f.stranger, other.ID, validProfile())
	require.True(t, created.OK(), created.Error)

	res = f.acts.UpdateWork(ctx, f.stranger, other.ID, workID, validWork())
	assert.Equal(t, "Work experience not found", res.Error)

	res = f.acts.DeleteWork(ctx, f.stranger, other.ID, workID)
	assert.Equal(t, "Work experience not found", res.Error)

	_, err := data.FindWork(ctx, f.db, workID, profileID)
	assert.NoError(t, err)
}

func TestProjectLinksAreReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profileID := f.withProfile(t)

	res := f.acts.CreateProject(ctx, f.owner, f.site.ID, profileID, validProject())
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Project added!", res.Success)
	projectID := res.ID

	values := validProject()
	values.Links = []types.LinkForm{{Type: "Demo", Href: "https://demo.ada.dev"}}
	res = f.acts.UpdateProject(ctx, f.owner, f.site.ID, projectID, values)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Project updated!", res.Success)

	project, err := data.FindProject(ctx, f.db, projectID, profileID)
	require.NoError(t, err)
	require.Len(t, project.Links, 1)
	assert.Equal(t, "Demo", project.Links[0].Type)

	values.Links = nil
	res = f.acts.UpdateProject(ctx, f.owner, f.site.ID, projectID, values)
	require.True(t, res.OK(), res.Error)

	var links int64
	require.NoError(t, f.db.Model(&models.Link{}).Where("project_id = ?", projectID).Count(&links).Error)
	assert.Zero(t, links)

	res = f.acts.DeleteProject(ctx, f.owner, f.site.ID, projectID)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Project deleted!", res.Success)

	res = f.acts.UpdateProject(ctx, f.owner, f.site.ID, projectID, values)
	assert.Equal(t, "Project not found", res.Error)
}

func TestContactUpsertKeepsSocialOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profileID := f.withProfile(t)

	values := types.ContactForm{
		Email: "ada@example.com",
		Social: []types.SocialForm{
			{Name: "GitHub", URL: "https://github.com/ada", Icon: "github", Navbar: true},
			{Name: "X", URL: "https://x.com/ada", Icon: "x"},
		},
	}

	res := f.acts.UpdateContact(ctx, f.owner, f.site.ID, profileID, values)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Contact information updated!", res.Success)
	contactID := res.ID

	values.Social = []types.SocialForm{
		{Name: "LinkedIn", URL: "https://linkedin.com/in/ada", Icon: "linkedin"},
		{Name: "GitHub", URL: "https://github.com/ada", Icon: "github"},
		{Name: "Site", URL: "https://ada.dev", Icon: "globe"},
	}
	res = f.acts.UpdateContact(ctx, f.owner, f.site.ID, profileID, values)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, contactID, res.ID)

	contact, err := data.FindContact(ctx, f.db, contactID, profileID)
	require.NoError(t, err)
	require.Len(t, contact.Socials, 3)
	assert.Equal(t, "LinkedIn", contact.Socials[0].Name)
	assert.Equal(t, "GitHub", contact.Socials[1].Name)
	assert.Equal(t, "Site", contact.Socials[2].Name)

	res = f.acts.DeleteContact(ctx, f.owner, f.site.ID, contactID)
	require.True(t, res.OK(), res.Error)

	var socials int64
	require.NoError(t, f.db.Model(&models.Social{}).Count(&socials).Error)
	assert.Zero(t, socials)
}

func TestCreateSubdomain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.acts.CreateSubdomain(ctx, f.owner, types.SubdomainForm{Name: "grace"})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "http://grace.localhost:3000", res.Redirect)

	cases := map[string]string{
		"":      "Subdomain is required",
		"Grace": "Subdomain can only have lowercase letters, numbers, and hyphens. Please try again.",
		"a b":   "Subdomain can only have lowercase letters, numbers, and hyphens. Please try again.",
		"ada":   "This subdomain is already taken",
		"grace": "This subdomain is already taken",
	}

	for name, want := range cases {
		res := f.acts.CreateSubdomain(ctx, f.stranger, types.SubdomainForm{Name: name})
		assert.Equal(t, want, res.Error, "name %q", name)
		assert.Equal(t, KindInvalidInput, res.Kind, "name %q", name)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Subdomain{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestDeleteSubdomainCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	profileID := f.withProfile(t)

	require.True(t, f.acts.CreateWork(ctx, f.owner, f.site.ID, profileID, validWork()).OK())
	require.True(t, f.acts.CreateProject(ctx, f.owner, f.site.ID, profileID, validProject()).OK())

	res := f.acts.DeleteSubdomain(ctx, f.owner, "ada")
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Domain deleted successfully", res.Success)

	for _, model := range []any{&models.Subdomain{}, &models.Profile{}, &models.Work{}, &models.Project{}, &models.Link{}} {
		var count int64
		require.NoError(t, f.db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}

	res = f.acts.DeleteSubdomain(ctx, f.owner, "ada")
	assert.Equal(t, "Subdomain not found", res.Error)
	assert.Contains(t, f.reval.paths(), "/s/ada")
}

type panickingRevalidator struct{}

func (panickingRevalidator) Revalidate(string, ...string) {
	panic("boom")
}

func TestPanicsBecomeGenericError(t *testing.T) {
	f := newFixture(t)
	acts := New(f.db, Options{Revalidator: panickingRevalidator{}, Logger: zap.NewNop()})

	res := acts.UpdateProfile(context.Background(), f.owner, f.site.ID, validProfile())
	assert.Equal(t, "Something went wrong!", res.Error)
	assert.Equal(t, KindUnexpected, res.Kind)
}
