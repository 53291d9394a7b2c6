package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
)

// errMissingReference mirrors a foreign key violation in the durable store.
var errMissingReference = errors.New("referenced record does not exist")

// MemoryStore keeps every table in maps guarded by one lock. Each mutation,
// cascades included, runs inside a single critical section.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[string]*models.User
	organizations map[uint]*models.Organization
	memberships   map[models.MembershipKey]*models.Membership
	photos        map[uint]*models.Photo
	galleries     map[uint]*models.Gallery
	competitions  map[uint]*models.Competition
	submissions   map[models.SubmissionKey]*models.Submission
	ratings       map[models.RatingKey]*models.Rating

	lastOrgID         uint
	lastPhotoID       uint
	lastGalleryID     uint
	lastCompetitionID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		organizations: make(map[uint]*models.Organization),
		memberships:   make(map[models.MembershipKey]*models.Membership),
		photos:        make(map[uint]*models.Photo),
		galleries:     make(map[uint]*models.Gallery),
		competitions:  make(map[uint]*models.Competition),
		submissions:   make(map[models.SubmissionKey]*models.Submission),
		ratings:       make(map[models.RatingKey]*models.Rating),
	}
}

func (s *MemoryStore) Backend() string { return "memory" }

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

// Users

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.users[id]), nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username != nil && *u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpsertUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Email != nil && s.emailTaken(*user.Email, user.ID) {
		return nil, fmt.Errorf("failed to upsert user: email %q already in use", *user.Email)
	}
	now := time.Now()
	if existing, ok := s.users[user.ID]; ok {
		existing.Email = copyString(user.Email)
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
		existing.UpdatedAt = now
		return copyUser(existing), nil
	}
	if user.Username != nil && s.usernameTaken(*user.Username, user.ID) {
		return nil, fmt.Errorf("failed to upsert user: username %q already in use", *user.Username)
	}
	row := *user
	row.Email = copyString(user.Email)
	row.Username = copyString(user.Username)
	row.CreatedAt = now
	row.UpdatedAt = now
	s.users[row.ID] = &row
	return copyUser(&row), nil
}

func (s *MemoryStore) UpdateUsername(_ context.Context, id, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if s.usernameTaken(username, id) {
		return nil, fmt.Errorf("failed to update user: username %q already in use", username)
	}
	u.Username = &username
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) UpdateUserBio(_ context.Context, id, bio string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.Bio = bio
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (s *MemoryStore) emailTaken(email, except string) bool {
	for id, u := range s.users {
		if id != except && u.Email != nil && *u.Email == email {
			return true
		}
	}
	return false
}

func (s *MemoryStore) usernameTaken(username, except string) bool {
	for id, u := range s.users {
		if id != except && u.Username != nil && *u.Username == username {
			return true
		}
	}
	return false
}

// Organizations

func (s *MemoryStore) CreateOrganization(_ context.Context, org *models.Organization, creatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[creatorID]; !ok {
		return fmt.Errorf("failed to add organization creator: %w", errMissingReference)
	}
	now := time.Now()
	s.lastOrgID++
	org.ID = s.lastOrgID
	stampCreated(&org.CreatedAt, &org.UpdatedAt, now)
	row := *org
	s.organizations[row.ID] = &row

	admin := &models.Membership{UserID: creatorID, OrganizationID: row.ID, IsAdmin: true, JoinedAt: now}
	s.memberships[admin.Key()] = admin
	return nil
}

func (s *MemoryStore) GetOrganization(_ context.Context, id uint) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if org, ok := s.organizations[id]; ok {
		out := *org
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListOrganizations(_ context.Context) ([]models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orgs := make([]models.Organization, 0, len(s.organizations))
	for _, org := range s.organizations {
		orgs = append(orgs, *org)
	}
	sortOrganizations(orgs)
	return orgs, nil
}

func (s *MemoryStore) ListOrganizationsByUser(_ context.Context, userID string) ([]models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orgs := []models.Organization{}
	for key := range s.memberships {
		if key.UserID != userID {
			continue
		}
		if org, ok := s.organizations[key.OrganizationID]; ok {
			orgs = append(orgs, *org)
		}
	}
	sortOrganizations(orgs)
	return orgs, nil
}

func (s *MemoryStore) UpdateOrganization(_ context.Context, id uint, upd models.OrganizationUpdate) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.organizations[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		org.Name = *upd.Name
	}
	if upd.Description != nil {
		org.Description = *upd.Description
	}
	org.UpdatedAt = time.Now()
	out := *org
	return &out, nil
}

func (s *MemoryStore) DeleteOrganization(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[id]; !ok {
		return false, nil
	}
	for key := range s.memberships {
		if key.OrganizationID == id {
			delete(s.memberships, key)
		}
	}
	for compID, comp := range s.competitions {
		if comp.OrganizationID == id {
			s.deleteCompetitionLocked(compID)
		}
	}
	delete(s.organizations, id)
	return true, nil
}

// Memberships

func (s *MemoryStore) UpsertMembership(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[m.UserID]; !ok {
		return fmt.Errorf("failed to upsert membership: %w", errMissingReference)
	}
	if _, ok := s.organizations[m.OrganizationID]; !ok {
		return fmt.Errorf("failed to upsert membership: %w", errMissingReference)
	}
	if existing, ok := s.memberships[m.Key()]; ok {
		existing.IsAdmin = m.IsAdmin
		m.JoinedAt = existing.JoinedAt
		return nil
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	row := models.Membership{UserID: m.UserID, OrganizationID: m.OrganizationID, IsAdmin: m.IsAdmin, JoinedAt: m.JoinedAt}
	s.memberships[row.Key()] = &row
	return nil
}

func (s *MemoryStore) DeleteMembership(_ context.Context, key models.MembershipKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memberships[key]; !ok {
		return false, nil
	}
	delete(s.memberships, key)
	return true, nil
}

func (s *MemoryStore) GetMembership(_ context.Context, key models.MembershipKey) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.memberships[key]; ok {
		out := *m
		out.User = nil
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListMembers(_ context.Context, orgID uint) ([]models.Membership, error) {
	return s.listMemberships(orgID, false), nil
}

func (s *MemoryStore) ListAdmins(_ context.Context, orgID uint) ([]models.Membership, error) {
	return s.listMemberships(orgID, true), nil
}

func (s *MemoryStore) listMemberships(orgID uint, adminsOnly bool) []models.Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []models.Membership
	for key, m := range s.memberships {
		if key.OrganizationID != orgID || (adminsOnly && !m.IsAdmin) {
			continue
		}
		out := *m
		out.User = copyUser(s.users[key.UserID])
		rows = append(rows, out)
	}
	return sortMembers(rows)
}

func (s *MemoryStore) CountAdmins(_ context.Context, orgID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for key, m := range s.memberships {
		if key.OrganizationID == orgID && m.IsAdmin {
			count++
		}
	}
	return count, nil
}

// Photos

func (s *MemoryStore) CreatePhoto(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[photo.UserID]; !ok {
		return fmt.Errorf("failed to create photo: %w", errMissingReference)
	}
	if photo.GalleryID != nil {
		if _, ok := s.galleries[*photo.GalleryID]; !ok {
			return fmt.Errorf("failed to create photo: %w", errMissingReference)
		}
	}
	s.lastPhotoID++
	photo.ID = s.lastPhotoID
	photo.ViewCount = 0
	stampCreated(&photo.CreatedAt, &photo.UpdatedAt, time.Now())
	row := *photo
	row.User = nil
	row.Gallery = nil
	row.GalleryID = copyUint(photo.GalleryID)
	s.photos[row.ID] = &row
	return nil
}

func (s *MemoryStore) GetPhoto(_ context.Context, id uint) (*models.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPhoto(s.photos[id]), nil
}

func (s *MemoryStore) ListPhotosByUser(_ context.Context, userID string) ([]models.Photo, error) {
	return s.filterPhotos(func(p *models.Photo) bool { return p.UserID == userID }, 0, false), nil
}

func (s *MemoryStore) ListPhotosByGallery(_ context.Context, galleryID uint) ([]models.Photo, error) {
	return s.filterPhotos(func(p *models.Photo) bool {
		return p.GalleryID != nil && *p.GalleryID == galleryID
	}, 0, false), nil
}

func (s *MemoryStore) ListRecentPublicPhotos(_ context.Context, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.filterPhotos(func(p *models.Photo) bool { return p.IsPublic }, limit, true), nil
}

func (s *MemoryStore) filterPhotos(keep func(*models.Photo) bool, limit int, withUser bool) []models.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photos := []models.Photo{}
	for _, p := range s.photos {
		if !keep(p) {
			continue
		}
		out := copyPhoto(p)
		if withUser {
			out.User = copyUser(s.users[p.UserID])
		}
		photos = append(photos, *out)
	}
	sort.Slice(photos, func(i, j int) bool {
		return newer(photos[i].CreatedAt, photos[i].ID, photos[j].CreatedAt, photos[j].ID)
	})
	if limit > 0 && len(photos) > limit {
		photos = photos[:limit]
	}
	return photos
}

func (s *MemoryStore) UpdatePhoto(_ context.Context, id uint, upd models.PhotoUpdate) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok {
		return nil, nil
	}
	if !upd.ClearGallery && upd.GalleryID != nil {
		if _, ok := s.galleries[*upd.GalleryID]; !ok {
			return nil, fmt.Errorf("failed to update photo: %w", errMissingReference)
		}
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.IsPublic != nil {
		p.IsPublic = *upd.IsPublic
	}
	switch {
	case upd.ClearGallery:
		p.GalleryID = nil
	case upd.GalleryID != nil:
		p.GalleryID = copyUint(upd.GalleryID)
	}
	p.UpdatedAt = time.Now()
	return copyPhoto(p), nil
}

func (s *MemoryStore) DeletePhoto(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[id]; !ok {
		return false, nil
	}
	for key := range s.submissions {
		if key.PhotoID == id {
			delete(s.submissions, key)
		}
	}
	for key := range s.ratings {
		if key.PhotoID == id {
			delete(s.ratings, key)
		}
	}
	delete(s.photos, id)
	return true, nil
}

func (s *MemoryStore) IncrementPhotoViews(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.photos[id]; ok {
		p.ViewCount++
	}
	return nil
}

// Galleries

func (s *MemoryStore) CreateGallery(_ context.Context, gallery *models.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[gallery.UserID]; !ok {
		return fmt.Errorf("failed to create gallery: %w", errMissingReference)
	}
	s.lastGalleryID++
	gallery.ID = s.lastGalleryID
	gallery.ViewCount = 0
	gallery.LikeCount = 0
	stampCreated(&gallery.CreatedAt, &gallery.UpdatedAt, time.Now())
	row := *gallery
	row.User = nil
	row.CoverPhotoID = copyUint(gallery.CoverPhotoID)
	s.galleries[row.ID] = &row
	return nil
}

func (s *MemoryStore) GetGallery(_ context.Context, id uint) (*models.Gallery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGallery(s.galleries[id]), nil
}

func (s *MemoryStore) ListGalleriesByUser(_ context.Context, userID string) ([]models.Gallery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	galleries := []models.Gallery{}
	for _, g := range s.galleries {
		if g.UserID == userID {
			galleries = append(galleries, *copyGallery(g))
		}
	}
	sort.Slice(galleries, func(i, j int) bool {
		return newer(galleries[i].CreatedAt, galleries[i].ID, galleries[j].CreatedAt, galleries[j].ID)
	})
	return galleries, nil
}

func (s *MemoryStore) UpdateGallery(_ context.Context, id uint, upd models.GalleryUpdate) (*models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.galleries[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.CoverPhotoID != nil {
		g.CoverPhotoID = copyUint(upd.CoverPhotoID)
	}
	if upd.IsPublic != nil {
		g.IsPublic = *upd.IsPublic
	}
	g.UpdatedAt = time.Now()
	return copyGallery(g), nil
}

func (s *MemoryStore) DeleteGallery(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.galleries[id]; !ok {
		return false, nil
	}
	for _, p := range s.photos {
		if p.GalleryID != nil && *p.GalleryID == id {
			p.GalleryID = nil
		}
	}
	delete(s.galleries, id)
	return true, nil
}

func (s *MemoryStore) IncrementGalleryViews(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.galleries[id]; ok {
		g.ViewCount++
	}
	return nil
}

func (s *MemoryStore) IncrementGalleryLikes(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.galleries[id]; ok {
		g.LikeCount++
	}
	return nil
}

// Competitions

func (s *MemoryStore) CreateCompetition(_ context.Context, comp *models.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[comp.OrganizationID]; !ok {
		return fmt.Errorf("failed to create competition: %w", errMissingReference)
	}
	s.lastCompetitionID++
	comp.ID = s.lastCompetitionID
	stampCreated(&comp.CreatedAt, &comp.UpdatedAt, time.Now())
	row := *comp
	row.Organization = nil
	row.EndDate = copyTime(comp.EndDate)
	s.competitions[row.ID] = &row
	return nil
}

func (s *MemoryStore) GetCompetition(_ context.Context, id uint) (*models.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCompetition(s.competitions[id]), nil
}

func (s *MemoryStore) ListCompetitionsByOrganization(_ context.Context, orgID uint) ([]models.Competition, error) {
	return s.filterCompetitions(func(c *models.Competition) bool { return c.OrganizationID == orgID }), nil
}

func (s *MemoryStore) ListActiveCompetitions(_ context.Context) ([]models.Competition, error) {
	return s.filterCompetitions(func(c *models.Competition) bool { return c.IsActive }), nil
}

func (s *MemoryStore) filterCompetitions(keep func(*models.Competition) bool) []models.Competition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comps := []models.Competition{}
	for _, c := range s.competitions {
		if keep(c) {
			comps = append(comps, *copyCompetition(c))
		}
	}
	sort.Slice(comps, func(i, j int) bool {
		return newer(comps[i].CreatedAt, comps[i].ID, comps[j].CreatedAt, comps[j].ID)
	})
	return comps
}

func (s *MemoryStore) UpdateCompetition(_ context.Context, id uint, upd models.CompetitionUpdate) (*models.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.competitions[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.StartDate != nil {
		c.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		c.EndDate = copyTime(upd.EndDate)
	}
	if upd.IsActive != nil {
		c.IsActive = *upd.IsActive
	}
	c.UpdatedAt = time.Now()
	return copyCompetition(c), nil
}

func (s *MemoryStore) DeleteCompetition(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[id]; !ok {
		return false, nil
	}
	s.deleteCompetitionLocked(id)
	return true, nil
}

func (s *MemoryStore) deleteCompetitionLocked(id uint) {
	for key := range s.submissions {
		if key.CompetitionID == id {
			delete(s.submissions, key)
		}
	}
	for key := range s.ratings {
		if key.IsCompetitionRating && key.CompetitionID == id {
			delete(s.ratings, key)
		}
	}
	delete(s.competitions, id)
}

// Submissions

func (s *MemoryStore) UpsertSubmission(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[sub.CompetitionID]; !ok {
		return fmt.Errorf("failed to upsert submission: %w", errMissingReference)
	}
	if _, ok := s.photos[sub.PhotoID]; !ok {
		return fmt.Errorf("failed to upsert submission: %w", errMissingReference)
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	s.submissions[sub.Key()] = &models.Submission{
		CompetitionID: sub.CompetitionID,
		PhotoID:       sub.PhotoID,
		SubmittedAt:   sub.SubmittedAt,
	}
	return nil
}

func (s *MemoryStore) DeleteSubmission(_ context.Context, key models.SubmissionKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[key]; !ok {
		return false, nil
	}
	delete(s.submissions, key)
	return true, nil
}

func (s *MemoryStore) HasSubmission(_ context.Context, key models.SubmissionKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.submissions[key]
	return ok, nil
}

func (s *MemoryStore) ListSubmissions(_ context.Context, competitionID uint) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := []models.Submission{}
	for key, sub := range s.submissions {
		if key.CompetitionID != competitionID {
			continue
		}
		out := *sub
		out.Photo = copyPhoto(s.photos[key.PhotoID])
		subs = append(subs, out)
	}
	sort.Slice(subs, func(i, j int) bool {
		return newer(subs[i].SubmittedAt, subs[i].PhotoID, subs[j].SubmittedAt, subs[j].PhotoID)
	})
	return subs, nil
}

// Ratings

func (s *MemoryStore) UpsertRating(_ context.Context, rating *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[rating.PhotoID]; !ok {
		return fmt.Errorf("failed to upsert rating: %w", errMissingReference)
	}
	if _, ok := s.users[rating.UserID]; !ok {
		return fmt.Errorf("failed to upsert rating: %w", errMissingReference)
	}
	if !rating.IsCompetitionRating {
		rating.CompetitionID = models.GeneralContext
	}
	now := time.Now()
	key := rating.Key()
	if existing, ok := s.ratings[key]; ok {
		existing.Rating = rating.Rating
		existing.UpdatedAt = now
		*rating = *existing
		return nil
	}
	row := models.Rating{
		PhotoID:             rating.PhotoID,
		UserID:              rating.UserID,
		IsCompetitionRating: rating.IsCompetitionRating,
		CompetitionID:       rating.CompetitionID,
		Rating:              rating.Rating,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.ratings[key] = &row
	*rating = row
	return nil
}

func (s *MemoryStore) GetRating(_ context.Context, key models.RatingKey) (*models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.ratings[key]; ok {
		out := *r
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListPhotoRatings(_ context.Context, photoID uint) ([]models.Rating, error) {
	return s.filterRatings(photoID, false, models.GeneralContext), nil
}

func (s *MemoryStore) PhotoAverageRating(_ context.Context, photoID uint) (*float64, error) {
	return average(s.filterRatings(photoID, false, models.GeneralContext)), nil
}

func (s *MemoryStore) ListCompetitionPhotoRatings(_ context.Context, photoID, competitionID uint) ([]models.Rating, error) {
	return s.filterRatings(photoID, true, competitionID), nil
}

func (s *MemoryStore) CompetitionPhotoAverageRating(_ context.Context, photoID, competitionID uint) (*float64, error) {
	return average(s.filterRatings(photoID, true, competitionID)), nil
}

func (s *MemoryStore) filterRatings(photoID uint, competition bool, competitionID uint) []models.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ratings := []models.Rating{}
	for key, r := range s.ratings {
		if key.PhotoID == photoID && key.IsCompetitionRating == competition && key.CompetitionID == competitionID {
			ratings = append(ratings, *r)
		}
	}
	sort.Slice(ratings, func(i, j int) bool {
		if !ratings[i].UpdatedAt.Equal(ratings[j].UpdatedAt) {
			return ratings[i].UpdatedAt.After(ratings[j].UpdatedAt)
		}
		return ratings[i].UserID < ratings[j].UserID
	})
	return ratings
}

func average(ratings []models.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := sum / float64(len(ratings))
	return &avg
}

// helpers

func newer(at time.Time, id uint, otherAt time.Time, otherID uint) bool {
	if !at.Equal(otherAt) {
		return at.After(otherAt)
	}
	return id > otherID
}

func sortOrganizations(orgs []models.Organization) {
	sort.Slice(orgs, func(i, j int) bool {
		if orgs[i].Name != orgs[j].Name {
			return orgs[i].Name < orgs[j].Name
		}
		return orgs[i].ID < orgs[j].ID
	})
}

func stampCreated(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	out := *u
	out.Email = copyString(u.Email)
	out.Username = copyString(u.Username)
	return &out
}

func copyPhoto(p *models.Photo) *models.Photo {
	if p == nil {
		return nil
	}
	out := *p
	out.GalleryID = copyUint(p.GalleryID)
	out.User = nil
	out.Gallery = nil
	return &out
}

func copyGallery(g *models.Gallery) *models.Gallery {
	if g == nil {
		return nil
	}
	out := *g
	out.CoverPhotoID = copyUint(g.CoverPhotoID)
	out.User = nil
	return &out
}

func copyCompetition(c *models.Competition) *models.Competition {
	if c == nil {
		return nil
	}
	out := *c
	out.EndDate = copyTime(c.EndDate)
	out.Organization = nil
	return &out
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyUint(v *uint) *uint {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
