package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/rating"
	"slices"
	"strconv"
	"strings"
	"time"
)

// MovieRow is a parsed movie keyed by its dataset id.
type MovieRow struct {
	SourceID int
	Movie    movie.Movie
}

// ReadMovies returns the first limit valid rows of movies_metadata.csv. A row is
// valid when its id is numeric, it has a title, a release date within the
// accepted years and at least one genre. Genre names are stored joined by ", ".
func ReadMovies(r io.Reader, limit int) ([]MovieRow, error) {
	reader, idx, err := newReader(r, "id", "title", "genres", "release_date", "overview")
	if err != nil {
		return nil, err
	}

	rows := make([]MovieRow, 0, limit)
	seen := make(map[int]bool)
	err = eachRecord(reader, func(record []string) bool {
		row, ok := parseMovieRecord(record, idx)
		if ok && !seen[row.SourceID] {
			seen[row.SourceID] = true
			rows = append(rows, row)
		}
		return len(rows) < limit
	})
	return rows, err
}

func parseMovieRecord(record []string, idx map[string]int) (MovieRow, bool) {
	id, err := strconv.Atoi(field(record, idx["id"]))
	if err != nil {
		return MovieRow{}, false
	}

	released, err := time.Parse(time.DateOnly, field(record, idx["release_date"]))
	if err != nil {
		return MovieRow{}, false
	}

	genres, err := decodeNamed(field(record, idx["genres"]))
	if err != nil {
		return MovieRow{}, false
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return MovieRow{}, false
	}

	m := movie.Movie{
		Title:       field(record, idx["title"]),
		ReleaseYear: released.Year(),
		Genre:       strings.Join(names, ", "),
		Description: field(record, idx["overview"]),
	}
	if m.Title == "" || m.ReleaseYear < movie.MinReleaseYear || m.ReleaseYear > movie.MaxReleaseYear {
		return MovieRow{}, false
	}
	return MovieRow{SourceID: id, Movie: m}, true
}

// ReadActors builds one actor per cast member found in credits.csv, keeping
// only the movies present in ids. Cast lists that cannot be decoded are skipped.
func ReadActors(r io.Reader, ids map[int]string) ([]actor.Actor, error) {
	reader, idx, err := newReader(r, "cast", "id")
	if err != nil {
		return nil, err
	}

	var order []int
	byCast := make(map[int]*actor.Actor)
	err = eachRecord(reader, func(record []string) bool {
		sourceID, err := strconv.Atoi(field(record, idx["id"]))
		if err != nil {
			return true
		}
		movieID, ok := ids[sourceID]
		if !ok {
			return true
		}

		cast, err := decodeNamed(field(record, idx["cast"]))
		if err != nil {
			return true
		}
		for _, member := range cast {
			if member.ID == 0 || member.Name == "" {
				continue
			}
			a, ok := byCast[member.ID]
			if !ok {
				a = &actor.Actor{Name: member.Name}
				byCast[member.ID] = a
				order = append(order, member.ID)
			}
			if !slices.Contains(a.MoviesPlayed, movieID) {
				a.MoviesPlayed = append(a.MoviesPlayed, movieID)
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(order))
	for i, castID := range order {
		actors[i] = *byCast[castID]
	}
	return actors, nil
}

// ReadRatings returns up to limit ratings from ratings_small.csv that reference
// a movie present in ids.
func ReadRatings(r io.Reader, ids map[int]string, limit int) ([]rating.Rating, error) {
	reader, idx, err := newReader(r, "movieId", "rating")
	if err != nil {
		return nil, err
	}

	var ratings []rating.Rating
	err = eachRecord(reader, func(record []string) bool {
		sourceID, err := strconv.Atoi(field(record, idx["movieId"]))
		if err != nil {
			return true
		}
		movieID, ok := ids[sourceID]
		if !ok {
			return true
		}
		value, err := strconv.ParseFloat(field(record, idx["rating"]), 64)
		if err != nil {
			return true
		}

		rt := rating.Rating{Rating: value, MovieID: movieID}
		if rt.Validate() == nil {
			ratings = append(ratings, rt)
		}
		return len(ratings) < limit
	})
	return ratings, err
}

func newReader(r io.Reader, required ...string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	idx := make(map[string]int, len(required))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q in csv header", name)
		}
	}
	return reader, idx, nil
}

// eachRecord calls fn for every well-formed record until fn returns false.
func eachRecord(reader *csv.Reader, fn func(record []string) bool) error {
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return err
		}
		if !fn(record) {
			return nil
		}
	}
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
