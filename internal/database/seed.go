package database

import (
	"context"
	"log"

	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/utils"
)

// Seed inserts sample records into any empty collection so a fresh
// install has something to browse and an administrator to log in with.
// Populated collections are left untouched.  Errors are logged and
// returned; a failed seed is not fatal to the server.
func Seed(ctx context.Context, movies *repository.MovieRepo, series *repository.SeriesRepo, users *repository.UserRepo, bcryptCost int) error {
	if n, err := movies.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, m := range sampleMovies {
			m := m
			if err := movies.Create(ctx, &m); err != nil {
				return err
			}
		}
		log.Println("seed: sample movies added")
	}

	if n, err := series.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, s := range sampleSeries {
			s := s
			if err := series.Create(ctx, &s); err != nil {
				return err
			}
		}
		log.Println("seed: sample series added")
	}

	if n, err := users.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		hash, err := utils.HashPassword("123456", bcryptCost)
		if err != nil {
			return err
		}
		for _, u := range sampleUsers {
			u := u
			u.Password = hash
			if err := users.Create(ctx, &u); err != nil {
				return err
			}
		}
		log.Println("seed: sample users added")
	}
	return nil
}

var sampleMovies = []model.Movie{
	{ID: 1, Title: "Inception", Director: "Christopher Nolan", Year: 2010, Genre: "Sci-Fi",
		Sinopsis: "A thief who steals corporate secrets",
		Cover:    "https://images.unsplash.com/photo-1440404653325-ab127d49abc1?w=300&h=400&fit=crop", Rating: 8.8},
	{ID: 2, Title: "The Matrix", Director: "Wachowski Sisters", Year: 1999, Genre: "Action",
		Sinopsis: "A computer hacker learns reality",
		Cover:    "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=300&h=400&fit=crop", Rating: 8.7},
}

var sampleSeries = []model.Series{
	{ID: 1, Title: "Breaking Bad", Director: "Vince Gilligan", Year: 2008, Genre: "Drama",
		Sinopsis: "A high school chemistry teacher turned methamphetamine producer",
		Cover:    "https://images.unsplash.com/photo-1489599735734-79b4fc8c4c8a?w=300&h=400&fit=crop",
		Seasons:  5, Episodes: 62, Rating: 9.5},
	{ID: 2, Title: "Stranger Things", Director: "The Duffer Brothers", Year: 2016, Genre: "Sci-Fi",
		Sinopsis: "Kids in a small town uncover supernatural mysteries",
		Cover:    "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=300&h=400&fit=crop",
		Seasons:  4, Episodes: 34, Rating: 8.7},
}

var sampleUsers = []model.User{
	{ID: 1, Name: "Admin User", Email: "admin@test.com", Role: model.RoleAdmin},
	{ID: 2, Name: "Regular User", Email: "user@test.com", Role: model.RoleUser},
}
