package repos

import (
	"context"
	"time"

	"bdc/internal/domain"
	applog "bdc/internal/log"

	"github.com/jmoiron/sqlx"
)

func price(v float64) *float64 { return &v }

// SeedDemo fills an empty catalog with the launch products. Safe to run on every start.
func SeedDemo(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM repuestos`); err != nil {
		return err
	}
	var m int
	if err := db.GetContext(ctx, &m, `SELECT COUNT(*) FROM motocargueros`); err != nil {
		return err
	}
	if n > 0 || m > 0 {
		return nil
	}

	applog.L().Info().Msg("[seed] inserting demo repuestos/motocargueros")

	reps := []domain.RepuestoInput{
		{Name: "Filtro de Aceite Premium", Description: "Máxima protección para tu motor. Compatible con múltiples modelos.", Price: price(35000), Stock: 24, Category: "Motor"},
		{Name: "Kit de Bujías Iridium", Description: "Mayor durabilidad y rendimiento óptimo del motor.", Price: price(89000), Stock: 12, Category: "Motor"},
		{Name: "Disco de Freno Ventilado", Description: "Frenado superior con tecnología de ventilación avanzada.", Price: price(145000), Stock: 6, Category: "Frenos"},
		{Name: "Cadena de Transmisión", Description: "Alta resistencia y durabilidad para cualquier terreno.", Price: price(120000), Stock: 9, Category: "Transmisión"},
		{Name: "Espejos Retrovisores", Description: "Diseño aerodinámico con visibilidad panorámica.", Stock: 15, Category: "Accesorios"},
		{Name: "Manillar Deportivo", Description: "Ergonomía perfecta para máximo control y confort.", Price: price(160000), Stock: 0, Category: "Accesorios"},
	}
	motos := []domain.MotocargueroInput{
		{Name: "Carguero 200 Trabajo", Description: "Chasis reforzado para la carga diaria de tu negocio.", Price: price(11900000), Motor: "200cc", Carga: "800 kg", Combustible: "Gasolina"},
		{Name: "Carguero 250 Platón", Description: "Platón amplio y suspensión trasera de ballesta.", Price: price(13500000), Motor: "250cc", Carga: "1000 kg", Combustible: "Gasolina"},
		{Name: "Carguero Furgón 200", Description: "Furgón cerrado para reparto seguro en la ciudad.", Price: price(14200000), Motor: "200cc", Carga: "700 kg", Combustible: "Gasolina"},
		{Name: "Carguero Eléctrico E3", Description: "Cero emisiones y bajo costo por kilómetro.", Motor: "3000 W", Carga: "500 kg", Combustible: "Eléctrico"},
		{Name: "Carguero 150 Urbano", Description: "Ágil en tráfico urbano y económico en consumo.", Price: price(9800000), Motor: "150cc", Carga: "500 kg", Combustible: "Gasolina"},
		{Name: "Carguero 300 Volteo", Description: "Platón con volteo hidráulico para materiales.", Price: price(17500000), Motor: "300cc", Carga: "1200 kg", Combustible: "Gasolina"},
	}

	repRepo := NewRepuestoRepo(db)
	motoRepo := NewMotocargueroRepo(db)
	// Staggered timestamps keep the list order equal to the order above.
	base := now()
	for i, in := range reps {
		in.ImageURL = "/static/img/repuesto.svg"
		in.IsActive, in.IsFeatured = true, true
		if _, err := repRepo.insert(ctx, in, base.Add(-time.Duration(i)*time.Second)); err != nil {
			return err
		}
	}
	for i, in := range motos {
		in.ImageURL = "/static/img/motocarguero.svg"
		in.IsActive, in.IsFeatured = true, true
		if _, err := motoRepo.insert(ctx, in, base.Add(-time.Duration(i)*time.Second)); err != nil {
			return err
		}
	}
	return nil
}
