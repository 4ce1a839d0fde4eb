package user

import "github.com/nguyendangquyen/MAP-DRESS/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
