package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/minutes"

// FindConflict ищет подтверждённое бронирование, пересекающееся с интервалом
// [start, end). Интервалы полуоткрытые: [s1,e1) и [s2,e2) конфликтуют только
// при s1 < e2 && e1 > s2, граничащие слоты не конфликтуют.
//
// Pending и cancelled бронирования слот не блокируют. Возвращается первое
// найденное пересечение (порядок не определён - вызывающему коду нужен факт
// конфликта и представитель для сообщения об ошибке).
func FindConflict(reservations []*Reservation, start, end minutes.MinuteOfDay) *Reservation {
	for _, r := range reservations {
		if !r.Blocks() {
			continue
		}
		if r.Overlaps(start, end) {
			return r
		}
	}
	return nil
}

// FindRequesterConflict ищет пересечение с подтверждёнными бронированиями
// заявителя на любых ресурсах: один человек не может находиться в двух местах
// одновременно. reservations - выборка по requester+date по всем ресурсам.
func FindRequesterConflict(reservations []*Reservation, start, end minutes.MinuteOfDay) *Reservation {
	// Правило пересечения то же, разница только в охвате выборки
	return FindConflict(reservations, start, end)
}
