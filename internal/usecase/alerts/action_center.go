package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/AtlasFacilities/service-desk-api/internal/domain/expiry"
	"github.com/AtlasFacilities/service-desk-api/internal/models"
	"github.com/AtlasFacilities/service-desk-api/internal/timezone"
)

// cacheTTL bounds how stale the action center may be. Within a day the
// classification cannot change, so a short TTL only smooths bursts.
const cacheTTL = 60 * time.Second

// Repository reads every expiry-carrying artifact of one contractor.
type Repository interface {
	ListBranches(ctx context.Context, contractorID uint) ([]models.Branch, error)
	ListEquipment(ctx context.Context, contractorID uint) ([]models.Equipment, error)
	ListCertificates(ctx context.Context, contractorID uint) ([]models.Certificate, error)
	ListActiveContracts(ctx context.Context, contractorID uint) ([]models.Contract, error)
}

type ActionCenter struct {
	repo  Repository
	cache *redis.Client
}

func NewActionCenter(repo Repository, cache *redis.Client) *ActionCenter {
	return &ActionCenter{repo: repo, cache: cache}
}

func cacheKey(contractorID uint) string {
	return fmt.Sprintf("action_center:%d", contractorID)
}

// Execute aggregates branch certificates, equipment, standalone
// certificates and contract end dates into one urgency-sorted list.
// Nothing classified here is ever written back.
func (uc *ActionCenter) Execute(ctx context.Context, contractorID uint) ([]expiry.Alert, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey(contractorID)).Result(); err == nil {
			var alerts []expiry.Alert
			if err := json.Unmarshal([]byte(cached), &alerts); err == nil {
				return alerts, nil
			}
		} else if err != redis.Nil {
			log.Printf("action center cache read failed: %v", err)
		}
	}

	alerts, err := uc.build(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(alerts); err == nil {
			if err := uc.cache.Set(ctx, cacheKey(contractorID), raw, cacheTTL).Err(); err != nil {
				log.Printf("action center cache write failed: %v", err)
			}
		}
	}

	return alerts, nil
}

func (uc *ActionCenter) build(ctx context.Context, contractorID uint) ([]expiry.Alert, error) {
	now := timezone.Now()
	alerts := []expiry.Alert{}

	branches, err := uc.repo.ListBranches(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	branchName := make(map[uint]string, len(branches))
	for _, b := range branches {
		branchName[b.ID] = b.Name
		if a, ok := expiry.BuildAlert(
			"branch_certificate", b.ID, b.ID, b.Name,
			b.CertificateNumber, b.CertificateExpiry, now,
		); ok {
			alerts = append(alerts, a)
		}
	}

	equipment, err := uc.repo.ListEquipment(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	for _, e := range equipment {
		if a, ok := expiry.BuildAlert(
			"equipment", e.ID, e.BranchID, branchName[e.BranchID],
			e.Name, e.ExpectedExpiry, now,
		); ok {
			alerts = append(alerts, a)
		}
	}

	certs, err := uc.repo.ListCertificates(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	for _, c := range certs {
		if a, ok := expiry.BuildAlert(
			"certificate", c.ID, c.BranchID, branchName[c.BranchID],
			c.Name, c.ExpiryDate, now,
		); ok {
			alerts = append(alerts, a)
		}
	}

	contracts, err := uc.repo.ListActiveContracts(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	for _, c := range contracts {
		if a, ok := expiry.BuildAlert(
			"contract", c.ID, 0, "",
			c.Number, c.EndDate, now,
		); ok {
			alerts = append(alerts, a)
		}
	}

	expiry.SortByUrgency(alerts)
	return alerts, nil
}
