package db

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo advertisers, clients, campaigns and affinity scores.
// Ids are deterministic so repeated runs stay idempotent.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(42))

	locations := []string{"Moscow", "Saint Petersburg", "Kazan", "Novosibirsk"}
	genders := []string{"MALE", "FEMALE"}

	advertiserIDs := make([]uuid.UUID, 0, 3)
	for i := 1; i <= 3; i++ {
		id := uuid.NewMD5(uuid.NameSpaceOID, []byte(fmt.Sprintf("advertiser-%d", i)))
		advertiserIDs = append(advertiserIDs, id)
		_, err := db.Exec(ctx, `INSERT INTO advertisers (id, name)
VALUES ($1, $2) ON CONFLICT DO NOTHING`, id, fmt.Sprintf("Advertiser %d", i))
		if err != nil {
			return err
		}
	}

	clientIDs := make([]uuid.UUID, 0, 50)
	for i := 1; i <= 50; i++ {
		id := uuid.NewMD5(uuid.NameSpaceOID, []byte(fmt.Sprintf("client-%d", i)))
		clientIDs = append(clientIDs, id)
		_, err := db.Exec(ctx, `INSERT INTO clients (id, login, age, location, gender)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
			id, fmt.Sprintf("user-%d", i), 16+r.Intn(50),
			locations[r.Intn(len(locations))], genders[r.Intn(len(genders))])
		if err != nil {
			return err
		}
	}

	for i := 1; i <= 6; i++ {
		id := uuid.NewMD5(uuid.NameSpaceOID, []byte(fmt.Sprintf("campaign-%d", i)))
		advertiserID := advertiserIDs[(i-1)%len(advertiserIDs)]
		var (
			gender   *string
			location *string
			ageFrom  *int
			ageTo    *int
		)
		if i%2 == 0 {
			g := "ALL"
			gender = &g
			from, to := 18, 45
			ageFrom, ageTo = &from, &to
		}
		if i%3 == 0 {
			location = &locations[0]
		}
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, impressions_limit, clicks_limit, cost_per_impression,
     cost_per_click, ad_title, ad_text, start_date, end_date, gender,
     age_from, age_to, location, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now()) ON CONFLICT DO NOTHING`,
			id, advertiserID, 100+r.Intn(400), 20+r.Intn(40),
			0.1+r.Float64(), 0.5+r.Float64()*2,
			fmt.Sprintf("Campaign %d", i), fmt.Sprintf("Ad text for campaign %d", i),
			0, 30, gender, ageFrom, ageTo, location)
		if err != nil {
			return err
		}
	}

	// affinity scores for a sample of (client, advertiser) pairs
	for _, clientID := range clientIDs {
		for _, advertiserID := range advertiserIDs {
			if r.Intn(3) != 0 {
				continue
			}
			_, err := db.Exec(ctx, `INSERT INTO ml_scores (client_id, advertiser_id, score)
VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, clientID, advertiserID, r.Intn(100))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
