// Package texts holds the bilingual (Uzbek Latin / Cyrillic) string table.
package texts

import (
	"fmt"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// DetectScript guesses whether text is written in Latin or Cyrillic script
// by counting characters of each class. Empty text defaults to Latin.
func DetectScript(text string) model.Script {
	var cyr, lat int
	for _, r := range text {
		switch {
		case r >= 0x0400 && r <= 0x04FF:
			cyr++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			lat++
		}
	}
	if cyr > lat {
		return model.ScriptCyrillic
	}
	return model.ScriptLatin
}

// Get returns the text for key in the given script, falling back to Latin.
func Get(key string, script model.Script) string {
	entry, ok := table[key]
	if !ok {
		return fmt.Sprintf("text not found: %s", key)
	}
	if script == model.ScriptCyrillic && entry.cyrillic != "" {
		return entry.cyrillic
	}
	return entry.latin
}

// Getf formats the keyed text with fmt verbs.
func Getf(key string, script model.Script, args ...interface{}) string {
	return fmt.Sprintf(Get(key, script), args...)
}

type entry struct {
	latin    string
	cyrillic string
}

var table = map[string]entry{
	"welcome": {
		latin: `Assalomu alaykum%s!

🤖 Uznetix Advisor botiga xush kelibsiz! Men sizga O'zbekiston bozoridagi eng yaxshi investitsiya imkoniyatlarini topishda yordam beraman.`,
		cyrillic: `Ассалому алайкум%s!

🤖 Uznetix Advisor ботга хуш келибсиз! Мен сизга Ўзбекистон бозоридаги энг яхши инвестиция имкониятларини топишда ёрдам бераман.`,
	},
	"welcome_back": {
		latin: `Xush kelibsiz, %s!

Uznetix Advisor sizni eslayapti. Yangi investitsiya tahlili olishni xohlaysizmi?`,
		cyrillic: `Хуш келибсиз, %s!

Uznetix Advisor сизни эслаяпти. Янги инвестиция таҳлили олишни хоҳлайсизми?`,
	},
	"disclaimer": {
		latin: `⚠️ MUHIM:
Bu tavsiyalar faqat ma'lumot uchun. Men moliyaviy maslahatchi emasman. Har qanday investitsiya o'zingiz mas'uliyatida!`,
		cyrillic: `⚠️ МУҲИМ:
Бу тавсиялар фақат маълумот учун. Мен молиявий маслаҳатчи эмасман. Ҳар қандай инвестиция ўзингиз масъулиятида!`,
	},
	"verification_prompt": {
		latin: `✉️ Uznetix mijozi ekanligingizni tasdiqlash uchun GetCourse'dagi emailingizni yuboring.

Masalan: example@gmail.com`,
		cyrillic: `✉️ Uznetix мижози эканлигингизни тасдиқлаш учун GetCourse'даги emailингизни юборинг.

Масалан: example@gmail.com`,
	},
	"checking_access": {
		latin:    "⏳ Tekshiryapman...",
		cyrillic: "⏳ Текшираяпман...",
	},
	"verification_success": {
		latin: `✅ Uznetix mijozingiz tasdiqlandi!

Endi to'liq funksiyalardan foydalanishingiz mumkin. Keling, shaxsiy investitsiya profilingizni yaratamiz!`,
		cyrillic: `✅ Uznetix мижозингиз тасдиқланди!

Энди тўлиқ функциялардан фойдаланишингиз мумкин. Келинг, шахсий инвестиция профилингизни яратамиз!`,
	},
	"verification_failed": {
		latin: `❌ Kechirasiz, sizni Uznetix mijozi sifatida topa olmadim.

Iltimos, to'g'ri emailni kiriting yoki Uznetix.com saytidan kursga yoziling.`,
		cyrillic: `❌ Кечирасиз, сизни Uznetix мижози сифатида топа олмадим.

Илтимос, тўғри emailни киритинг ёки Uznetix.com сайтидан курсга ёзилинг.`,
	},
	"verification_required": {
		latin:    "⛔️ Ushbu funksiyadan foydalanish uchun avval ro'yxatdan o'tishingiz kerak.",
		cyrillic: "⛔️ Ушбу функциядан фойдаланиш учун аввал рўйхатдан ўтишингиз керак.",
	},
	"invalid_email": {
		latin:    "❌ Email noto'g'ri ko'rinadi. Qaytadan kiriting.",
		cyrillic: "❌ Email нотўғри кўринади. Қайтадан киритинг.",
	},
	"interview_start": {
		latin: `🎯 Investitsiya intervyusi boshlanmoqda...

Men sizga eng mos investitsiya variantlarini topishda yordam beraman. Bir necha savol beraman.`,
		cyrillic: `🎯 Инвестиция интервюси бошланмоқда...

Мен сизга энг мос инвестиция вариантларини топишда ёрдам бераман. Бир неча савол бераман.`,
	},
	"interview_greeting": {
		latin: `Assalomu alaykum! Men Uznetix Advisor investitsiya maslahatchiman. Minglab odamlarga muvaffaqiyatli portfel yig'ishda yordam berganman.

Keling, birgalikda sizning maqsadlaringizga erishamiz! Menga haqingizda ko'proq ma'lumot bering.

Siz nima maqsadda investitsiya qilmoqchisiz? Uy sotib olish, bolalaringiz ta'limi, yoqimli pensiya yoki passiv daromadmi?`,
		cyrillic: `Ассалому алайкум! Мен Uznetix Advisor - инвестиция маслаҳатчиман. Минглаб одамларга муваффақиятли портфел йиғишда ёрдам берганман.

Келинг, биргаликда сизнинг мақсадларингизга эришамиз! Менга ҳақингизда кўпроқ маълумот беринг.

Сиз нима мақсадда инвестиция қилмоқчисиз? Уй сотиб олиш, болаларингиз таълими, ёқимли пенсия ёки пассив даромадми?`,
	},
	"generating_recommendation": {
		latin: `⏳ Tavsiya tayyorlanmoqda...

Bir oz kuting, sizning ma'lumotlaringiz asosida eng yaxshi variantlarni tanlayman.`,
		cyrillic: `⏳ Тавсия тайёрланмоқда...

Бир оз кутинг, сизнинг маълумотларингиз асосида энг яхши вариантларни танлайман.`,
	},
	"continue_chat_offer": {
		latin: `💬 Aksiyalar va investitsiyalar bo'yicha savollaringiz bormi?

Men Uznetix Advisor sifatida sizga yordam berishga tayyorman!`,
		cyrillic: `💬 Акциялар ва инвестициялар бўйича саволларингиз борми?

Мен Uznetix Advisor сифатида сизга ёрдам беришга тайёрман!`,
	},
	"chat_ready": {
		latin: `✅ Tayyor! Aksiyalar, portfel, yoki investitsiyalar haqida savol bering.

Masalan: "Tesla aksiyasi haqida nima deyish mumkin?" yoki "Qaysi aksiya yaxshiroq?"`,
		cyrillic: `✅ Тайёр! Акциялар, портфель, ёки инвестициялар ҳақида савол беринг.

Масалан: "Tesla акцияси ҳақида нима дейиш мумкин?" ёки "Қайси акция яхшироқ?"`,
	},
	"back_to_menu": {
		latin:    "🏠 Asosiy menyuga qaytdingiz.",
		cyrillic: "🏠 Асосий менюга қайтдингиз.",
	},
	"error_general": {
		latin:    "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring yoki /start buyrug'ini yuboring.",
		cyrillic: "❌ Хатолик юз берди. Илтимос, қайтадан уриниб кўринг ёки /start буйруғини юборинг.",
	},
	"error_recommendation": {
		latin:    "❌ Tavsiya yaratishda xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring.",
		cyrillic: "❌ Тавсия яратишда хатолик юз берди. Илтимос, қайтадан уриниб кўринг.",
	},
	"rate_prompt": {
		latin:    "⭐ Tavsiyani baholang:",
		cyrillic: "⭐ Тавсияни баҳоланг:",
	},
	"button_new_interview": {
		latin:    "🎯 Yangi investitsiya tavsiyasi olish",
		cyrillic: "🎯 Янги инвестиция тавсияси олиш",
	},
	"button_continue_chat": {
		latin:    "💬 Davom etish (savol berish)",
		cyrillic: "💬 Давом этиш (савол бериш)",
	},
	"button_back_to_menu": {
		latin:    "🏠 Asosiy menyuga qaytish",
		cyrillic: "🏠 Асосий менюга қайтиш",
	},
}
