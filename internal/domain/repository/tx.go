package repository

// TxRepositories repositorios atados a una misma transacción de BD.
type TxRepositories struct {
	Transfers  TransferRepository
	Stocks     StockRepository
	Warehouses WarehouseRepository
	Products   ProductRepository
}
