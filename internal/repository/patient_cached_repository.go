package repository

import (
	"context"
	"errors"
	"iter"
	"time"

	"patient-records/internal/domain/entity"
	domainRepo "patient-records/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisPatientCountKey holds the cached number of stored patients
const RedisPatientCountKey = "patients:count"

type patientCachedRepository struct {
	next        domainRepo.PatientRepository
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Entry
}

// NewPatientCachedRepository caches Count of next in Redis. Appends drop the
// cached value. Redis failures are logged and served from next.
func NewPatientCachedRepository(next domainRepo.PatientRepository, redisClient *redis.Client, ttl time.Duration, log *logrus.Entry) domainRepo.PatientRepository {
	return &patientCachedRepository{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

func (r *patientCachedRepository) Append(ctx context.Context, patient *entity.Patient) error {
	if err := r.next.Append(ctx, patient); err != nil {
		return err
	}
	if err := r.redisClient.Del(ctx, RedisPatientCountKey).Err(); err != nil {
		r.log.Warnf("Failed to invalidate patient count: %+v", err)
	}
	return nil
}

func (r *patientCachedRepository) Iterate(ctx context.Context) iter.Seq2[*entity.Patient, error] {
	return r.next.Iterate(ctx)
}

func (r *patientCachedRepository) Limit(ctx context.Context, n int) iter.Seq2[*entity.Patient, error] {
	return r.next.Limit(ctx, n)
}

func (r *patientCachedRepository) Count(ctx context.Context) (int64, error) {
	cached, err := r.redisClient.Get(ctx, RedisPatientCountKey).Int64()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.log.Warnf("Failed to read cached patient count: %+v", err)
	}

	count, err := r.next.Count(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.redisClient.Set(ctx, RedisPatientCountKey, count, r.ttl).Err(); err != nil {
		r.log.Warnf("Failed to cache patient count: %+v", err)
	}
	return count, nil
}

func (r *patientCachedRepository) Close() error {
	return errors.Join(r.next.Close(), r.redisClient.Close())
}
