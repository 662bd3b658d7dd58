package worker

import (
	"context"
	"sync"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

// Config параметры пула
type Config struct {
	Workers      int
	QueueSize    int
	ScanInterval time.Duration
	// BatchSize число заказов, запрашиваемых за один проход сканера
	BatchSize int
}

// Pool досоздает леджеры заказов, у которых он не был сформирован при смене статуса.
// Сканер периодически ищет такие заказы, воркеры вызывают EnsureLedger.
type Pool struct {
	cfg       Config
	queue     chan *domain.Order
	orderRepo domain.OrderRepository
	ledger    domain.LedgerService
	logger    *zap.Logger

	inFlight sync.Map
	wg       sync.WaitGroup
	scanWG   sync.WaitGroup
	stopOnce sync.Once
}

// NewPool создает новый worker pool
func NewPool(cfg Config, orderRepo domain.OrderRepository, ledger domain.LedgerService, logger *zap.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = cfg.QueueSize
	}
	return &Pool{
		cfg:       cfg,
		queue:     make(chan *domain.Order, cfg.QueueSize),
		orderRepo: orderRepo,
		ledger:    ledger,
		logger:    logger,
	}
}

// Start запускает worker pool
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.scanWG.Add(1)
	go p.scanner(ctx)
}

// Stop останавливает worker pool. Контекст Start должен быть отменен до вызова.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		// Сканер завершается первым, чтобы не писать в закрытую очередь
		p.scanWG.Wait()
		close(p.queue)
		p.wg.Wait()
	})
}

// worker обрабатывает заказы из очереди
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", zap.Int("worker_id", id))
			return
		case order, ok := <-p.queue:
			if !ok {
				return
			}
			p.processOrder(ctx, order)
			p.inFlight.Delete(order.ID)
		}
	}
}

// scanner периодически ищет заказы без леджера
func (p *Pool) scanner(ctx context.Context) {
	defer p.scanWG.Done()

	ticker := time.NewTicker(p.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("scanner stopping")
			return
		case <-ticker.C:
			p.scanOrders(ctx)
		}
	}
}

// scanOrders отправляет в очередь заказы, ожидающие леджер
func (p *Pool) scanOrders(ctx context.Context) {
	orders, err := p.orderRepo.GetOrdersAwaitingLedger(ctx, p.cfg.BatchSize)
	if err != nil {
		p.logger.Error("failed to get orders awaiting ledger", zap.Error(err))
		return
	}

	for _, order := range orders {
		// Заказ уже в очереди или обрабатывается
		if _, loaded := p.inFlight.LoadOrStore(order.ID, struct{}{}); loaded {
			continue
		}

		select {
		case p.queue <- order:
		case <-ctx.Done():
			p.inFlight.Delete(order.ID)
			return
		default:
			p.inFlight.Delete(order.ID)
			p.logger.Warn("queue is full, skipping order", zap.Stringer("order_id", order.ID))
		}
	}
}

// processOrder формирует леджер одного заказа
func (p *Pool) processOrder(ctx context.Context, order *domain.Order) {
	p.logger.Debug("processing order", zap.Stringer("order_id", order.ID), zap.String("status", string(order.Status)))

	created, err := p.ledger.EnsureLedger(ctx, order)
	if err != nil {
		p.logger.Error("failed to generate ledger",
			zap.Stringer("order_id", order.ID),
			zap.Error(err),
		)
		return
	}

	if created {
		p.logger.Info("ledger generated",
			zap.Stringer("order_id", order.ID),
			zap.Stringer("user_id", order.UserID),
		)
	}
}
