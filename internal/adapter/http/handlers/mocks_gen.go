package handlers

//go:generate mockgen -source=../../../usecase/invoice_usecase.go -destination=mocks/invoice_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/webhook_usecase.go -destination=mocks/webhook_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/return_usecase.go -destination=mocks/return_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/order_usecase.go -destination=mocks/order_usecase_mock.go -package=mocks
