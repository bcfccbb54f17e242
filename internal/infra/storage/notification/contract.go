package notification

import "github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (может быть *sql.DB или *sql.Tx)
type DBExecutor = dbmetrics.DBExecutor

// Provider выдает исполнителя запросов
type Provider = dbmetrics.Provider
