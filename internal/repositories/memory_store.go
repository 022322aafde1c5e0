package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"weather-info/internal/models"
)

type userCity struct {
	userID, cityID int64
}

// MemoryStore keeps everything in process memory; used with DB_DRIVER=memory and in tests.
type MemoryStore struct {
	mu sync.RWMutex

	cities     map[int64]models.City
	cityByName map[string]int64
	users      map[int64]models.User
	userByName map[string]int64
	links      map[userCity]struct{}
	nextCityID int64
	nextUserID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cities:     make(map[int64]models.City),
		cityByName: make(map[string]int64),
		users:      make(map[int64]models.User),
		userByName: make(map[string]int64),
		links:      make(map[userCity]struct{}),
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) CreateCity(_ context.Context, city models.City) (models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cityByName[city.Name]; ok {
		return models.City{}, fmt.Errorf("city %q: %w", city.Name, ErrDuplicate)
	}
	s.nextCityID++
	city.ID = s.nextCityID
	s.cities[city.ID] = city
	s.cityByName[city.Name] = city.ID
	return city, nil
}

func (s *MemoryStore) ListCities(context.Context) ([]models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.City, 0, len(s.cities))
	for _, c := range s.cities {
		out = append(out, c)
	}
	sortCities(out)
	return out, nil
}

func (s *MemoryStore) FindCityByName(_ context.Context, name string) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.cityByName[name]
	if !ok {
		return models.City{}, fmt.Errorf("city %q: %w", name, ErrNotFound)
	}
	return s.cities[id], nil
}

func (s *MemoryStore) CreateUser(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByName[username]; ok {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrDuplicate)
	}
	s.nextUserID++
	u := models.User{ID: s.nextUserID, Username: username}
	s.users[u.ID] = u
	s.userByName[username] = u.ID
	return u, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

func (s *MemoryStore) LinkCity(_ context.Context, userID, cityID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if _, ok := s.cities[cityID]; !ok {
		return false, fmt.Errorf("city %d: %w", cityID, ErrNotFound)
	}
	key := userCity{userID: userID, cityID: cityID}
	if _, ok := s.links[key]; ok {
		return false, nil
	}
	s.links[key] = struct{}{}
	return true, nil
}

func (s *MemoryStore) ListUserCities(_ context.Context, userID int64) ([]models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.City, 0)
	for link := range s.links {
		if link.userID == userID {
			out = append(out, s.cities[link.cityID])
		}
	}
	sortCities(out)
	return out, nil
}

func (s *MemoryStore) FindUserCity(_ context.Context, userID int64, name string) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.cityByName[name]
	if ok {
		if _, linked := s.links[userCity{userID: userID, cityID: id}]; linked {
			return s.cities[id], nil
		}
	}
	return models.City{}, fmt.Errorf("city %q of user %d: %w", name, userID, ErrNotFound)
}

func sortCities(cities []models.City) {
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
}
