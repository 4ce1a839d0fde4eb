package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	ProductID     uuid.UUID            // ID товара
	CustomerName  string               // Имя покупателя (для гостевого пользователя)
	Email         string               // Email покупателя, по нему ищется пользователь
	Phone         *string              // Телефон (опционально)
	SelectedDates []types.Date         // Выбранные дни, могут быть не подряд и с повторами
	TotalPrice    *decimal.Decimal     // Сумма, показанная клиенту (опционально, сверяется с серверной)
	TotalDays     int                  // Количество дней у клиента (0 - не сверять)
	Notes         *string              // Пожелания
	PaymentMethod domain.PaymentMethod // deposit или full, пусто - deposit
}

// Policy параметры бронирования из конфигурации
type Policy struct {
	DepositPercent int             // предоплата для способа deposit, %
	PriceTolerance decimal.Decimal // допустимое расхождение цены клиента и сервера
}

// DefaultPolicy политика по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		DepositPercent: domain.DefaultDepositPercent,
		PriceTolerance: decimal.RequireFromString(domain.DefaultPriceTolerance),
	}
}

// Response модель ответа с созданной арендой
type Response struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	UserID          uuid.UUID
	StartDate       types.Date
	EndDate         types.Date
	BookedDates     []types.Date // фактически занятые дни
	TotalDays       int
	TotalPrice      decimal.Decimal
	DepositPaid     decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          string
	PaymentMethod   string
	Notes           *string
	GuestCreated    bool // пользователь создан этим бронированием

	CreatedAt time.Time
	UpdatedAt time.Time
}
