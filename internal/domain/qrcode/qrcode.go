package qrcode

//go:generate mockgen -source=qrcode.go -destination=../../usecase/generateqr/mocks/generator_mock.go -package=mocks

// Generator renders a payload string into a scannable image.
type Generator interface {
	Generate(content string) ([]byte, error)
	DataURL(content string) (string, error)
}
