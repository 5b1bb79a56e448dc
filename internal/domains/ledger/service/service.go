package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Ledger=MockLedgerService

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/ledger/model"
	"hotel/internal/domains/ledger/model/dto"
	"hotel/internal/domains/ledger/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache prefixes are exported so writers of ledger entries can invalidate them.
const (
	CacheGetAllTransactions = "ledger:gets"
	CacheCountTransactions  = "ledger:count"
	CacheSummary            = "ledger:summary"
)

const reportDirectory = "reports/ledger"

var reportHeader = []string{"id", "booking_id", "order_code", "type", "method", "amount", "description", "created_by", "created_at"}

type Ledger interface {
	List(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
	Summary(ctx context.Context, req dto.PeriodRequest) (dto.SummaryResponse, error)
	ExportReport(ctx context.Context, req dto.PeriodRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo  repository.Transaction
	s3    s3.S3
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Transaction, s3 s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:  repo,
		s3:    s3,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// InvalidateCaches drops every cached ledger read.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache) {
	shared.InvalidateCaches(ctx, redisCache, CacheGetAllTransactions)
	shared.InvalidateCaches(ctx, redisCache, CacheCountTransactions)
	shared.InvalidateCaches(ctx, redisCache, CacheSummary)
}

func (s *serviceImpl) List(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ledger.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllTransactions, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for transactions")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transactions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountTransactions, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transaction count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context, req dto.PeriodRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ledger.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheSummary, req.From, req.To)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ledger summary")

		return res, nil
	}

	entries, from, to, err := s.period(ctx, req)
	if err != nil {
		return res, err
	}

	res.FromModel(model.Summarize(from, to, entries))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ledger summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ExportReport(ctx context.Context, req dto.PeriodRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ledger.ExportReport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	entries, _, _, err := s.period(ctx, req)
	if err != nil {
		return res, err
	}

	data, err := encodeReport(entries)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode ledger report")

		return res, fmt.Errorf("failed to encode ledger report: %w", err)
	}

	fileName := fmt.Sprintf("ledger_%s_%s_%d.csv", req.From, req.To, timezone.Now().Unix())

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, reportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload ledger report")

		return res, fmt.Errorf("failed to upload ledger report: %w", err)
	}

	log.Info().Str("url", url).Int("entries", len(entries)).Msg("ledger report exported")

	return dto.ExportResponse{URL: url, Count: len(entries)}, nil
}

func (s *serviceImpl) period(ctx context.Context, req dto.PeriodRequest) ([]model.Transaction, time.Time, time.Time, error) {
	from, to, err := req.Bounds()
	if err != nil {
		return nil, from, to, failure.BadRequest(err) //nolint:wrapcheck
	}

	if !from.Before(to) {
		return nil, from, to, failure.BadRequestFromString("from must not be after to") //nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	entries, err := s.repo.GetAll(ctx, params, repository.PeriodFilter(from, to))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions for period")

		return nil, from, to, fmt.Errorf("failed to get transactions for period: %w", err)
	}

	return entries, from, to, nil
}

func encodeReport(entries []model.Transaction) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write(reportHeader); err != nil {
		return nil, err //nolint:wrapcheck
	}

	for _, entry := range entries {
		record := []string{
			entry.ID,
			entry.BookingID,
			bookingModel.OrderCodeOf(entry.BookingID),
			string(entry.Type),
			string(entry.Method),
			strconv.FormatInt(entry.Amount, 10),
			entry.Description,
			entry.CreatedBy,
			timezone.Format(entry.CreatedAt, constant.DateFormat),
		}

		if err := writer.Write(record); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	writer.Flush()

	return buf.Bytes(), writer.Error() //nolint:wrapcheck
}
