package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

const (
	battlePrefix      = "battle:"
	activePrefix      = "battle:active:"
	creaturePrefix    = "creature:"
	ownerIndexPrefix  = "creature:owner:"
	defaultConnection = "redis://localhost:6379"
)

// finding is one broken entry and how to repair it
type finding struct {
	key    string
	reason string
	repair func(ctx context.Context, client *redis.Client) error
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = defaultConnection
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning battles and creatures...")

	var findings []finding
	checked := 0

	battleFindings, n, err := checkBattles(ctx, client)
	if err != nil {
		log.Fatal("Error during battle scan:", err)
	}
	findings = append(findings, battleFindings...)
	checked += n

	creatureFindings, n, err := checkCreatures(ctx, client)
	if err != nil {
		log.Fatal("Error during creature scan:", err)
	}
	findings = append(findings, creatureFindings...)
	checked += n

	fmt.Printf("\nChecked %d keys, found %d problems\n", checked, len(findings))
	if len(findings) == 0 {
		fmt.Println("No broken data found!")
		return
	}

	fmt.Println("\nProblems:")
	for _, f := range findings {
		fmt.Printf("  - %s: %s\n", f.key, f.reason)
	}

	fmt.Print("\nDo you want to REPAIR these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, f := range findings {
		if err := f.repair(ctx, client); err != nil {
			fmt.Printf("Failed to repair %s: %v\n", f.key, err)
		} else {
			fmt.Printf("Repaired %s\n", f.key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

func deleteKey(key string) func(context.Context, *redis.Client) error {
	return func(ctx context.Context, client *redis.Client) error {
		return client.Del(ctx, key).Err()
	}
}

// checkBattles reports undecodable battle records and active pointers whose
// battle is gone
func checkBattles(ctx context.Context, client *redis.Client) ([]finding, int, error) {
	var findings []finding
	checked := 0

	iter := client.Scan(ctx, 0, battlePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		checked++

		if strings.HasPrefix(key, activePrefix) {
			id, err := client.Get(ctx, key).Result()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", key, err)
				continue
			}
			exists, err := client.Exists(ctx, battlePrefix+id).Result()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", battlePrefix+id, err)
				continue
			}
			if exists == 0 {
				findings = append(findings, finding{
					key:    key,
					reason: "points at missing battle " + id,
					repair: deleteKey(key),
				})
			}
			continue
		}

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var record battles.Record
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			findings = append(findings, finding{key: key, reason: "corrupted JSON", repair: deleteKey(key)})
			continue
		}
		if record.Session == nil || record.Session.Player == nil || record.Session.Opponent == nil {
			findings = append(findings, finding{key: key, reason: "battle has no session", repair: deleteKey(key)})
		}
	}

	return findings, checked, iter.Err()
}

// checkCreatures reports undecodable creatures and owner index members whose
// creature is gone
func checkCreatures(ctx context.Context, client *redis.Client) ([]finding, int, error) {
	var findings []finding
	checked := 0

	iter := client.Scan(ctx, 0, creaturePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		checked++

		if strings.HasPrefix(key, ownerIndexPrefix) {
			members, err := client.SMembers(ctx, key).Result()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", key, err)
				continue
			}
			for _, id := range members {
				exists, err := client.Exists(ctx, creaturePrefix+id).Result()
				if err != nil {
					fmt.Printf("Error reading %s: %v\n", creaturePrefix+id, err)
					continue
				}
				if exists == 0 {
					indexKey, member := key, id
					findings = append(findings, finding{
						key:    key,
						reason: "lists missing creature " + id,
						repair: func(ctx context.Context, client *redis.Client) error {
							return client.SRem(ctx, indexKey, member).Err()
						},
					})
				}
			}
			continue
		}

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var record creatures.Record
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			findings = append(findings, finding{key: key, reason: "corrupted JSON", repair: deleteKey(key)})
			continue
		}
		if record.Creature == nil || record.Creature.SpeciesID == "" {
			findings = append(findings, finding{key: key, reason: "creature has no species", repair: deleteKey(key)})
		}
	}

	return findings, checked, iter.Err()
}
