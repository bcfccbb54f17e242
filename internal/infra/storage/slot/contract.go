package slot

import (
	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type Provider = dbmetrics.Provider
