package quote

// collection is the built-in set the picker draws from.
var collection = []Quote{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Success is not final, failure is not fatal.", "Winston Churchill"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"Whether you think you can, or you think you can't – you're right.", "Henry Ford"},
	{"The only impossible journey is the one you never begin.", "Tony Robbins"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"The future belongs to those who believe in the beauty of their dreams.", "Eleanor Roosevelt"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Focus on being productive instead of busy.", "Tim Ferriss"},
	{"The key to success is to focus on goals, not obstacles.", "Unknown"},
	{"Concentrate all your thoughts on the work at hand.", "Alexander Graham Bell"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Your time is limited, don't waste it living someone else's life.", "Steve Jobs"},
	{"It is during our darkest moments that we must focus to see the light.", "Aristotle"},
	{"Don't stop when you're tired. Stop when you're done.", "Unknown"},
	{"It's going to be hard, but hard does not mean impossible.", "Unknown"},
	{"Fall seven times, stand up eight.", "Japanese Proverb"},
	{"The master has failed more times than the beginner has even tried.", "Stephen McCranie"},
	{"Courage is not the absence of fear, but rather the assessment that something else is more important.", "Franklin D. Roosevelt"},
	{"Wake up with determination. Go to bed with satisfaction.", "Unknown"},
	{"Do something today that your future self will thank you for.", "Sean Patrick Flanery"},
	{"Little things make big days.", "Unknown"},
	{"Don't wait for opportunity. Create it.", "Unknown"},
	{"Dream it. Wish it. Do it.", "Unknown"},
	{"Great things never come from comfort zones.", "Unknown"},
	{"Your limitation—it's only your imagination.", "Unknown"},
	{"Sometimes we're tested not to show our weaknesses, but to discover our strengths.", "Unknown"},
	{"The only way to learn is to do.", "Richard Branson"},
	{"Knowledge is power.", "Francis Bacon"},
	{"Education is the most powerful weapon which you can use to change the world.", "Nelson Mandela"},
	{"The more that you read, the more things you will know.", "Dr. Seuss"},
	{"Strive for progress, not perfection.", "Unknown"},
	{"It is time to take the bull by the horns.", "Unknown"},
	{"The only place success comes before work is in the dictionary.", "Vince Lombardi"},
	{"Success usually comes to those who are too busy to be looking for it.", "Henry David Thoreau"},
	{"Quality is not an act, it is a habit.", "Aristotle"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"What we think, we become.", "Buddha"},
	{"If you can dream it, you can achieve it.", "Zig Ziglar"},
	{"I am not what happened to me. I am what I choose to become.", "Carl Jung"},
	{"Everything you want is on the other side of fear.", "George Addair"},
	{"The comeback is always stronger than the setback.", "Unknown"},
	{"It is not the mountain we conquer, but ourselves.", "Edmund Hillary"},
	{"Strength doesn't come from what you can do. It comes from overcoming the things you once thought you couldn't.", "Rikki Rogers"},
	{"The only real failure in life is not trying.", "Unknown"},
	{"We are what we repeatedly do. Excellence, then, is not an act, but a habit.", "Aristotle"},
	{"The discipline to pursue the extraordinary is the most valuable resource you have.", "Robin Sharma"},
	{"You don't rise to the level of your goals, you fall to the level of your systems.", "James Clear"},
	{"Small progress is still progress.", "Unknown"},
	{"The two most important days in your life are the day you are born and the day you find out why.", "Mark Twain"},
	{"Don't ask what the world needs. Ask what makes you come alive and go do it.", "Howard Thurman"},
	{"Your work is going to fill a large part of your life.", "Steve Jobs"},
	{"Finding purpose is not about finding a job you love; it's about doing work that you believe in.", "Unknown"},
	{"Great things take time.", "Unknown"},
	{"Patience, persistence, and perspiration make an unbeatable combination for success.", "Napoleon Hill"},
	{"Rome was not built in a day.", "Unknown"},
	{"Invest in yourself. Your education, your health, your skills—these are the best investments.", "Unknown"},
	{"Be yourself; everyone else is already taken.", "Oscar Wilde"},
	{"Comparison is the thief of joy.", "Theodore Roosevelt"},
	{"The greatest glory in living lies not in never falling, but in rising every time we fall.", "Nelson Mandela"},
	{"Act as if what you do makes a difference. It does.", "William James"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"Do not go where the path may lead, go instead where there is no path and leave a trail.", "Ralph Waldo Emerson"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"The only way out is through.", "Robert Frost"},
	{"You are braver than you believe, stronger than you seem, and smarter than you think.", "A.A. Milne"},
	{"Don't let yesterday take up too much of today.", "Will Rogers"},
	{"A leader is one who knows the way, goes the way, and shows the way.", "John C. Maxwell"},
	{"The greatest leader is not necessarily the one who does the greatest things.", "Ronald Reagan"},
	{"Leadership is not about being in charge. It's about taking care of those in your charge.", "Simon Sinek"},
	{"A goal without a plan is just a wish.", "Antoine de Saint-Exupéry"},
	{"The only limit to our realization of tomorrow will be our doubts of today.", "Franklin D. Roosevelt"},
	{"If you aim at nothing, you will hit it every time.", "Unknown"},
	{"Creativity takes courage.", "Henri Matisse"},
	{"Innovation distinguishes between a leader and a follower.", "Steve Jobs"},
	{"The chief enemy of creativity is good sense.", "Pablo Picasso"},
	{"Discipline is choosing between what you want now and what you want most.", "Abraham Lincoln"},
	{"Your potential is the one thing you can control.", "Unknown"},
	{"Nothing is impossible. The word itself says I'm possible!", "Audrey Hepburn"},
	{"The only true wisdom is in knowing you know nothing.", "Socrates"},
	{"An investment in knowledge pays the best interest.", "Benjamin Franklin"},
	{"The obstacle is the way.", "Marcus Aurelius"},
	{"Momentum is created by action.", "Unknown"},
	{"Every accomplishment starts with the decision to try.", "Unknown"},
	{"Motion creates emotion.", "Tony Robbins"},
	{"Gratitude turns what we have into enough.", "Melody Beattie"},
	{"The present moment is filled with joy and peace.", "Thich Nhat Hanh"},
	{"Be grateful for what you have while pursuing what you want.", "Unknown"},
	{"Change is the only constant.", "Heraclitus"},
	{"The only way to make sense out of change is to plunge into it, move with it, and join the dance.", "Alan Watts"},
	{"Life is 10% what happens to you and 90% how you react to it.", "Charles R. Swindoll"},
}
