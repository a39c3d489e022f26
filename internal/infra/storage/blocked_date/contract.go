package blocked_date

import "github.com/m04kA/PGC-SchedulingService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor
